package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dkalenko/medfact/internal/api"
	"github.com/dkalenko/medfact/internal/render"
	"github.com/spf13/cobra"
)

var (
	forceRefresh bool
	asJSON       bool
	noCache      bool
	checkTimeout time.Duration
	backendURL   string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single health claim",
	Long: `Check submits one claim to the verification backend and renders the
verdict with its confidence, summary and ranked sources.

Repeat claims resolve from the local verdict cache; --force-refresh asks
the backend to bypass its own cache as well.

Example:
  medfact check "Vitamin C cures the common cold"
  medfact check "Vaccines cause autism" --force-refresh
  medfact check "Garlic lowers blood pressure" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass cached verdicts, local and backend")
	checkCmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the local verdict cache")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 60*time.Second, "request timeout")
	checkCmd.Flags().StringVar(&backendURL, "backend", "", "verification backend base URL")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.HTTP.Timeout = checkTimeout
	if backendURL != "" {
		cfg.HTTP.BaseURL = backendURL
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Backend: %s\n", cfg.HTTP.BaseURL)
		fmt.Fprintf(os.Stderr, "Cache:   %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	client := api.NewClient(cfg.HTTP)
	notifier := newNotifier()
	flow := newFlow(cfg, client, notifier)
	defer flow.Close()

	result, err := flow.Submit(ctx, claim, forceRefresh)
	if err != nil {
		// The notifier already surfaced the user-facing message
		return fmt.Errorf("verification failed: %w", err)
	}

	renderer := render.NewRenderer(!asJSON)
	if asJSON {
		return renderer.RenderJSON(os.Stdout, result)
	}
	return renderer.RenderText(os.Stdout, result)
}
