package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dkalenko/medfact/internal/api"
	"github.com/dkalenko/medfact/internal/model"
	"github.com/spf13/cobra"
)

var (
	reportClaimID   int64
	reportClaimText string
	reportReason    string
	reporterName    string
	reporterEmail   string
	supportingDOI   string
	supportingFile  string
	supportingURL   string
	reportTimeout   time.Duration
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Dispute a verdict with supporting evidence",
	Long: `Report files a dispute against a previously rendered verdict. A
dispute needs a reason and exactly one piece of supporting evidence: a DOI,
a PDF file (at most 20 MB), or a URL. Disputes are reviewed by an
administrator.

Example:
  medfact report --claim-id 42 --reason "Cites a retracted study" --doi 10.1000/xyz
  medfact report --claim-text "Vaccines cause autism" --reason "Outdated verdict" --file evidence.pdf`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Int64Var(&reportClaimID, "claim-id", 0, "id of the disputed claim")
	reportCmd.Flags().StringVar(&reportClaimText, "claim-text", "", "text of the disputed claim (when no id is known)")
	reportCmd.Flags().StringVar(&reportReason, "reason", "", "why the verdict is disputed (required)")
	reportCmd.Flags().StringVar(&reporterName, "name", "", "reporter name (optional)")
	reportCmd.Flags().StringVar(&reporterEmail, "email", "", "reporter email (optional)")
	reportCmd.Flags().StringVar(&supportingDOI, "doi", "", "supporting DOI")
	reportCmd.Flags().StringVar(&supportingFile, "file", "", "supporting PDF file")
	reportCmd.Flags().StringVar(&supportingURL, "url", "", "supporting URL")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 2*time.Minute, "request timeout (uploads may be slow)")
	reportCmd.Flags().StringVar(&backendURL, "backend", "", "verification backend base URL")

	_ = reportCmd.MarkFlagRequired("reason")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.HTTP.Timeout = reportTimeout
	if backendURL != "" {
		cfg.HTTP.BaseURL = backendURL
	}

	client := api.NewClient(cfg.HTTP)

	dispute, err := client.CreateDispute(ctx, model.DisputeSubmission{
		ClaimID:        reportClaimID,
		ClaimText:      reportClaimText,
		Reason:         reportReason,
		ReporterName:   reporterName,
		ReporterEmail:  reporterEmail,
		SupportingDOI:  supportingDOI,
		SupportingFile: supportingFile,
		SupportingURL:  supportingURL,
	})
	if err != nil {
		return fmt.Errorf("submit dispute: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Dispute filed")
	if dispute.ID != 0 {
		fmt.Fprintf(os.Stderr, " (id %d)", dispute.ID)
	}
	fmt.Fprintln(os.Stderr, ". An administrator will review it.")
	return nil
}
