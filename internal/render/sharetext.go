package render

import (
	"fmt"
	"strings"

	"github.com/dkalenko/medfact/internal/model"
)

// ShareText produces the human-readable summary used by copy and share
// actions. It is a pure function of the result: the claim appears verbatim,
// sources keep their original order with 1-based ranks, and a DOI link is
// preferred over a bare URL when both are present.
func ShareText(result *model.VerificationResult) string {
	var b strings.Builder

	info := Label(result.Verdict.Label)
	fmt.Fprintf(&b, "Claim: %s\n", result.Text)
	fmt.Fprintf(&b, "Verdict: %s (%d%% confidence)\n", info.Display, Confidence(result.Verdict.Confidence))

	if result.Verdict.Summary != nil && strings.TrimSpace(*result.Verdict.Summary) != "" {
		fmt.Fprintf(&b, "\n%s\n", *result.Verdict.Summary)
	} else {
		b.WriteString("\nNo summary available.\n")
	}

	if len(result.Sources) > 0 {
		b.WriteString("\nSources:\n")
		for i, ranked := range result.Sources {
			fmt.Fprintf(&b, "%d. %s", i+1, ranked.Source.Title)
			if link := ranked.Source.Link(); link != "" {
				fmt.Fprintf(&b, " - %s", link)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
