package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dkalenko/medfact/internal/model"
)

// CreateDispute submits a dispute with its supporting evidence as a
// multipart form. Exactly one of SupportingDOI, SupportingFile or
// SupportingURL must be provided; the submission is validated locally
// before any network call.
func (c *Client) CreateDispute(ctx context.Context, sub model.DisputeSubmission) (*model.Dispute, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"reason":         sub.Reason,
		"reporter_name":  sub.ReporterName,
		"reporter_email": sub.ReporterEmail,
		"supporting_doi": sub.SupportingDOI,
		"supporting_url": sub.SupportingURL,
	}
	if sub.ClaimID != 0 {
		fields["claim_id"] = strconv.FormatInt(sub.ClaimID, 10)
	} else {
		fields["claim_text"] = sub.ClaimText
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	if sub.SupportingFile != "" {
		if err := attachEvidenceFile(form, sub.SupportingFile); err != nil {
			return nil, err
		}
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/disputes/create/", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var dispute model.Dispute
	if err := c.decodeResponse(resp, &dispute, false); err != nil {
		return nil, err
	}
	return &dispute, nil
}

func validateSubmission(sub model.DisputeSubmission) error {
	if strings.TrimSpace(sub.Reason) == "" {
		return fmt.Errorf("dispute reason is required")
	}
	if sub.ClaimID == 0 && strings.TrimSpace(sub.ClaimText) == "" {
		return fmt.Errorf("either a claim id or the claim text is required")
	}

	provided := 0
	for _, v := range []string{sub.SupportingDOI, sub.SupportingFile, sub.SupportingURL} {
		if v != "" {
			provided++
		}
	}
	if provided != 1 {
		return fmt.Errorf("exactly one of supporting DOI, file or URL is required, got %d", provided)
	}
	return nil
}

// attachEvidenceFile streams a local PDF into the form, enforcing the
// backend's type and size limits up front
func attachEvidenceFile(form *multipart.Writer, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("supporting file must be a PDF: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open supporting file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat supporting file: %w", err)
	}
	if info.Size() > model.MaxEvidenceFileBytes {
		return fmt.Errorf("supporting file exceeds %d MB limit", model.MaxEvidenceFileBytes>>20)
	}

	part, err := form.CreateFormFile("supporting_file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy supporting file: %w", err)
	}
	return nil
}
