package cli

import (
	"fmt"
	"strconv"

	"github.com/dkalenko/medfact/internal/model"
	"github.com/spf13/cobra"
)

// newDisputeCommands builds the dispute review tree
func newDisputeCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disputes",
		Short: "Review and resolve disputes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all disputes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := newAdminClient(adminConfig())
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}
			ctx, cancel := adminContext()
			defer cancel()
			disputes, err := client.ListDisputes(ctx)
			if err != nil {
				return fmt.Errorf("list disputes: %w", err)
			}
			return printJSON(disputes)
		},
	}

	resolve := func(use string, status model.DisputeStatus) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: use + " a dispute",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid dispute id %q", args[0])
				}
				client, sess, err := newAdminClient(adminConfig())
				if err != nil {
					return err
				}
				if err := requireSession(sess); err != nil {
					return err
				}
				ctx, cancel := adminContext()
				defer cancel()
				updated, err := client.ResolveDispute(ctx, id, status)
				if err != nil {
					return fmt.Errorf("resolve dispute: %w", err)
				}
				return printJSON(updated)
			},
		}
	}

	cmd.AddCommand(list, resolve("accept", model.DisputeAccepted), resolve("reject", model.DisputeRejected))
	return cmd
}
