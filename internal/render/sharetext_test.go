package render

import (
	"strings"
	"testing"

	"github.com/dkalenko/medfact/internal/model"
)

func sampleResult() *model.VerificationResult {
	summary := "Large studies show no causal link."
	return &model.VerificationResult{
		Text: "Vaccines cause autism",
		Verdict: model.Verdict{
			Label:      "hoax",
			Confidence: 0.92,
			Summary:    &summary,
		},
		Sources: []model.RankedSource{
			{Source: model.SourceRef{Title: "Study X", DOI: "10.1/xyz", URL: "https://example.com/x"}, RelevanceScore: 0.8},
			{Source: model.SourceRef{Title: "Study Y", URL: "https://example.com/y"}, RelevanceScore: 0.6},
			{Source: model.SourceRef{Title: "Study Z"}, RelevanceScore: 0.5},
		},
	}
}

func TestShareText_Content(t *testing.T) {
	text := ShareText(sampleResult())

	if !strings.Contains(text, "Vaccines cause autism") {
		t.Error("share text must include the claim verbatim")
	}
	if !strings.Contains(text, "Hoax") {
		t.Error("share text must include the display label")
	}
	if !strings.Contains(text, "92%") {
		t.Error("share text must include the rounded confidence")
	}
	if !strings.Contains(text, "Large studies show no causal link.") {
		t.Error("share text must include the summary")
	}
}

func TestShareText_SourceOrderAndLinks(t *testing.T) {
	text := ShareText(sampleResult())

	// 1-based ranks in insertion order
	i1 := strings.Index(text, "1. Study X")
	i2 := strings.Index(text, "2. Study Y")
	i3 := strings.Index(text, "3. Study Z")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Fatalf("sources out of order or missing ranks:\n%s", text)
	}

	// DOI link outranks the bare URL
	if !strings.Contains(text, "https://doi.org/10.1/xyz") {
		t.Error("expected DOI link for Study X")
	}
	if strings.Contains(text, "https://example.com/x") {
		t.Error("bare URL must not appear when a DOI is present")
	}
	if !strings.Contains(text, "https://example.com/y") {
		t.Error("expected bare URL for Study Y")
	}
}

func TestShareText_Idempotent(t *testing.T) {
	result := sampleResult()
	first := ShareText(result)
	second := ShareText(result)
	if first != second {
		t.Error("ShareText must be a pure function of the result")
	}
}

func TestShareText_MissingSummaryAndSources(t *testing.T) {
	result := &model.VerificationResult{
		Text:    "Garlic cures cancer",
		Verdict: model.Verdict{Label: "hoax", Confidence: 0.88},
	}

	text := ShareText(result)
	if !strings.Contains(text, "No summary available.") {
		t.Error("missing summary must degrade to a placeholder")
	}
	if strings.Contains(text, "Sources:") {
		t.Error("sources section must be omitted when there are none")
	}
}
