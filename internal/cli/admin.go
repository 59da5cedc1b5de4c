package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/dkalenko/medfact/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var adminTimeout time.Duration

// adminCmd groups the authenticated back-office commands
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative back office (claims, disputes, sources, journals)",
	Long: `Admin commands manage the fact-checking back office. They require a
bearer token obtained with 'medfact admin login'; the token is kept in
~/.medfact/session.json until logout or expiry.`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminLogin,
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := newAdminClient(buildConfig())
		if err != nil {
			return err
		}
		if err := sess.Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)

	adminCmd.PersistentFlags().DurationVar(&adminTimeout, "timeout", 30*time.Second, "request timeout")
	adminCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "verification backend base URL")

	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(newRecordCommands())
	adminCmd.AddCommand(newDisputeCommands())
}

func runAdminLogin(cmd *cobra.Command, args []string) error {
	username := args[0]

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx, cancel := adminContext()
	defer cancel()

	cfg := adminConfig()
	client, sess, err := newAdminClient(cfg)
	if err != nil {
		return err
	}

	resp, err := client.Login(ctx, model.Credentials{
		Username: username,
		Password: string(password),
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := sess.SetToken(resp.Token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Logged in.")
	return nil
}

func adminConfig() *model.Config {
	cfg := buildConfig()
	cfg.HTTP.Timeout = adminTimeout
	if backendURL != "" {
		cfg.HTTP.BaseURL = backendURL
	}
	return cfg
}

func adminContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), adminTimeout)
}

// printJSON renders any admin record list or record as indented JSON
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
