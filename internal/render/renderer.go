package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dkalenko/medfact/internal/model"
)

// ansi maps color tokens to escape sequences
var ansi = map[string]string{
	ColorGreen:  "\033[32m",
	ColorRed:    "\033[31m",
	ColorYellow: "\033[33m",
	ColorGray:   "\033[90m",
}

const ansiReset = "\033[0m"

// Renderer writes verification results for the CLI
type Renderer struct {
	colorize bool
}

// NewRenderer creates a renderer. Coloring is applied only when enabled.
func NewRenderer(colorize bool) *Renderer {
	return &Renderer{colorize: colorize}
}

// RenderText writes a human-readable result to w
func (r *Renderer) RenderText(w io.Writer, result *model.VerificationResult) error {
	info := Label(result.Verdict.Label)

	badge := info.Display
	if r.colorize {
		if code, ok := ansi[info.Color]; ok {
			badge = code + badge + ansiReset
		}
	}

	fmt.Fprintf(w, "Claim:      %s\n", result.Text)
	fmt.Fprintf(w, "Verdict:    %s\n", badge)
	fmt.Fprintf(w, "Confidence: %d%%\n", Confidence(result.Verdict.Confidence))

	if result.Verdict.Summary != nil && strings.TrimSpace(*result.Verdict.Summary) != "" {
		fmt.Fprintf(w, "\n%s\n", *result.Verdict.Summary)
	} else {
		fmt.Fprintf(w, "\nNo summary available.\n")
	}

	if len(result.Sources) > 0 {
		fmt.Fprintf(w, "\nSources:\n")
		for i, ranked := range result.Sources {
			fmt.Fprintf(w, "  %d. %s", i+1, ranked.Source.Title)
			if link := ranked.Source.Link(); link != "" {
				fmt.Fprintf(w, "\n     %s", link)
			}
			if ranked.RelevanceScore > 0 {
				fmt.Fprintf(w, "  (relevance %.2f)", ranked.RelevanceScore)
			}
			fmt.Fprintln(w)
		}
	}

	if !result.CreatedAt.IsZero() {
		fmt.Fprintf(w, "\nVerified at %s\n", result.CreatedAt.Format("2006-01-02 15:04 MST"))
	}

	return nil
}

// RenderJSON writes the raw result as indented JSON to w
func (r *Renderer) RenderJSON(w io.Writer, result *model.VerificationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// WriteJSONFile writes the result as indented JSON to path
func (r *Renderer) WriteJSONFile(result *model.VerificationResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return r.RenderJSON(f, result)
}
