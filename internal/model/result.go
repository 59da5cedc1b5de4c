package model

import "time"

// VerificationRequest is a single claim submitted for verification
type VerificationRequest struct {
	ClaimText    string `json:"text"`                     // The claim text itself
	ForceRefresh bool   `json:"_force_refresh,omitempty"` // Ask the backend to bypass any cached verdict
}

// VerificationResult is the backend's resolution of one verification request.
// The client treats it as opaque beyond the fields it reads; unknown fields
// are ignored and a result is never merged or patched - each new submission
// fully replaces the prior one.
type VerificationResult struct {
	Text      string         `json:"text"`                // The claim as echoed by the backend
	Verdict   Verdict        `json:"verificationResult"`  // Label, confidence, summary
	Sources   []RankedSource `json:"sources,omitempty"`   // Rank order; index+1 is the display rank
	CreatedAt time.Time      `json:"created_at,omitzero"` // When the verdict was produced
}

// Verdict is the categorical outcome of verification
type Verdict struct {
	Label      string  `json:"label"`             // valid, hoax, uncertain, unverified and variants
	Confidence float64 `json:"confidence"`        // Backend-reported certainty in [0,1]
	Summary    *string `json:"summary,omitempty"` // May be absent
}

// RankedSource is a cited source together with its relevance
type RankedSource struct {
	Source         SourceRef `json:"source"`
	RelevanceScore float64   `json:"relevance_score"`
	Excerpt        string    `json:"excerpt,omitempty"`
}

// SourceRef is a bibliographic or web reference
type SourceRef struct {
	Title     string   `json:"title"`
	DOI       string   `json:"doi,omitempty"`
	URL       string   `json:"url,omitempty"`
	Authors   []string `json:"authors,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
}

// Link returns the preferred link for the source: a DOI resolver link when a
// DOI is present, the bare URL otherwise, empty when neither exists.
func (s SourceRef) Link() string {
	if s.DOI != "" {
		return "https://doi.org/" + s.DOI
	}
	return s.URL
}
