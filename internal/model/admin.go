package model

import "time"

// Claim is a stored claim record as managed through the admin surface
type Claim struct {
	ID        int64     `json:"id,omitempty"`
	Text      string    `json:"text"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// DisputeStatus tracks the review lifecycle of a dispute
type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"     // Awaiting review
	DisputeAccepted DisputeStatus = "accepted" // Verdict overturned or amended
	DisputeRejected DisputeStatus = "rejected" // Original verdict stands
)

// Dispute is a user-submitted challenge to a rendered verdict
type Dispute struct {
	ID            int64         `json:"id,omitempty"`
	ClaimID       int64         `json:"claim_id,omitempty"`
	ClaimText     string        `json:"claim_text,omitempty"`
	Reason        string        `json:"reason"`
	ReporterName  string        `json:"reporter_name,omitempty"`
	ReporterEmail string        `json:"reporter_email,omitempty"`
	SupportingDOI string        `json:"supporting_doi,omitempty"`
	SupportingURL string        `json:"supporting_url,omitempty"`
	Status        DisputeStatus `json:"status,omitempty"`
	CreatedAt     time.Time     `json:"created_at,omitzero"`
}

// DisputeSubmission carries one dispute to the create endpoint. Exactly one
// of SupportingDOI, SupportingFile, SupportingURL must be set; the file must
// be a PDF of at most MaxEvidenceFileBytes.
type DisputeSubmission struct {
	ClaimID        int64
	ClaimText      string
	Reason         string
	ReporterName   string
	ReporterEmail  string
	SupportingDOI  string
	SupportingURL  string
	SupportingFile string // Path to a local PDF
}

// MaxEvidenceFileBytes is the backend's limit for dispute evidence uploads
const MaxEvidenceFileBytes = 20 << 20

// Source is an admin-managed bibliographic source record
type Source struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	DOI       string `json:"doi,omitempty"`
	URL       string `json:"url,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	JournalID int64  `json:"journal_id,omitempty"`
}

// Journal is an admin-managed journal record
type Journal struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name"`
	ISSN      string  `json:"issn,omitempty"`
	Publisher string  `json:"publisher,omitempty"`
	ImpactF   float64 `json:"impact_factor,omitempty"`
}

// Credentials authenticate an administrator
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued by the backend
type LoginResponse struct {
	Token string `json:"token"`
}
