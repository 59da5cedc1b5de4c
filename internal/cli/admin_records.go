package cli

import (
	"fmt"
	"strconv"

	"github.com/dkalenko/medfact/internal/model"
	"github.com/spf13/cobra"
)

var (
	sourceTitle     string
	sourceDOI       string
	sourceURL       string
	sourcePublisher string
	journalName     string
	journalISSN     string
	journalPub      string
	claimLabel      string
)

// newRecordCommands builds the sources/journals/claims CRUD trees
func newRecordCommands() *cobra.Command {
	group := &cobra.Command{
		Use:   "records",
		Short: "Manage source, journal and claim records",
	}
	group.AddCommand(newSourcesCmd(), newJournalsCmd(), newClaimsCmd())
	return group
}

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage bibliographic sources",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all sources",
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
			sources, err := client.ListSources(ctx)
			if err != nil {
				return fmt.Errorf("list sources: %w", err)
			}
			return printJSON(sources)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a source",
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
			created, err := client.CreateSource(ctx, model.Source{
				Title:     sourceTitle,
				DOI:       sourceDOI,
				URL:       sourceURL,
				Publisher: sourcePublisher,
			})
			if err != nil {
				return fmt.Errorf("create source: %w", err)
			}
			return printJSON(created)
		},
	}
	create.Flags().StringVar(&sourceTitle, "title", "", "source title (required)")
	create.Flags().StringVar(&sourceDOI, "doi", "", "source DOI")
	create.Flags().StringVar(&sourceURL, "url", "", "source URL")
	create.Flags().StringVar(&sourcePublisher, "publisher", "", "publisher")
	_ = create.MarkFlagRequired("title")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid source id %q", args[0])
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
			if err := client.DeleteSource(ctx, id); err != nil {
				return fmt.Errorf("delete source: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newJournalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journals",
		Short: "Manage journal records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all journals",
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
			journals, err := client.ListJournals(ctx)
			if err != nil {
				return fmt.Errorf("list journals: %w", err)
			}
			return printJSON(journals)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a journal",
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
			created, err := client.CreateJournal(ctx, model.Journal{
				Name:      journalName,
				ISSN:      journalISSN,
				Publisher: journalPub,
			})
			if err != nil {
				return fmt.Errorf("create journal: %w", err)
			}
			return printJSON(created)
		},
	}
	create.Flags().StringVar(&journalName, "name", "", "journal name (required)")
	create.Flags().StringVar(&journalISSN, "issn", "", "ISSN")
	create.Flags().StringVar(&journalPub, "publisher", "", "publisher")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid journal id %q", args[0])
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
			if err := client.DeleteJournal(ctx, id); err != nil {
				return fmt.Errorf("delete journal: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newClaimsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Manage stored claims",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all claims",
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
			claims, err := client.ListClaims(ctx)
			if err != nil {
				return fmt.Errorf("list claims: %w", err)
			}
			return printJSON(claims)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid claim id %q", args[0])
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
			claim, err := client.GetClaim(ctx, id)
			if err != nil {
				return fmt.Errorf("get claim: %w", err)
			}
			return printJSON(claim)
		},
	}

	relabel := &cobra.Command{
		Use:   "relabel <id>",
		Short: "Overwrite the label on a stored claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid claim id %q", args[0])
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
			claim, err := client.GetClaim(ctx, id)
			if err != nil {
				return fmt.Errorf("get claim: %w", err)
			}
			claim.Label = claimLabel
			updated, err := client.UpdateClaim(ctx, *claim)
			if err != nil {
				return fmt.Errorf("update claim: %w", err)
			}
			return printJSON(updated)
		},
	}
	relabel.Flags().StringVar(&claimLabel, "label", "", "new label (required)")
	_ = relabel.MarkFlagRequired("label")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid claim id %q", args[0])
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
			if err := client.DeleteClaim(ctx, id); err != nil {
				return fmt.Errorf("delete claim: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(list, get, relabel, del)
	return cmd
}
