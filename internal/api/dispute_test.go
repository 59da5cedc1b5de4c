package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkalenko/medfact/internal/model"
)

func TestCreateDispute_MultipartFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/disputes/create/" {
			t.Errorf("expected /disputes/create/, got %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart body, got %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("reason"); got != "cites a retracted study" {
			t.Errorf("unexpected reason %q", got)
		}
		if got := r.FormValue("claim_id"); got != "42" {
			t.Errorf("unexpected claim_id %q", got)
		}
		if got := r.FormValue("supporting_doi"); got != "10.1000/xyz" {
			t.Errorf("unexpected supporting_doi %q", got)
		}
		if got := r.FormValue("claim_text"); got != "" {
			t.Errorf("claim_text must be omitted when claim_id is set, got %q", got)
		}
		_, _ = w.Write([]byte(`{"id": 7, "reason": "cites a retracted study", "status": "open"}`))
	}))
	defer server.Close()

	dispute, err := testClient(server.URL).CreateDispute(context.Background(), model.DisputeSubmission{
		ClaimID:       42,
		Reason:        "cites a retracted study",
		SupportingDOI: "10.1000/xyz",
	})
	if err != nil {
		t.Fatalf("CreateDispute failed: %v", err)
	}
	if dispute.ID != 7 || dispute.Status != model.DisputeOpen {
		t.Errorf("unexpected dispute %+v", dispute)
	}
}

func TestCreateDispute_FileUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evidence.pdf")
	content := []byte("%PDF-1.4 fake body")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		f, header, err := r.FormFile("supporting_file")
		if err != nil {
			t.Fatalf("missing supporting_file part: %v", err)
		}
		defer f.Close()
		if header.Filename != "evidence.pdf" {
			t.Errorf("unexpected file name %q", header.Filename)
		}
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(f)
		if !bytes.Equal(buf.Bytes(), content) {
			t.Error("uploaded file content mismatch")
		}
		_, _ = w.Write([]byte(`{"id": 8, "reason": "outdated", "status": "open"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateDispute(context.Background(), model.DisputeSubmission{
		ClaimText:      "claim under dispute",
		Reason:         "outdated",
		SupportingFile: path,
	})
	if err != nil {
		t.Fatalf("CreateDispute failed: %v", err)
	}
}

func TestCreateDispute_Validation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()
	client := testClient(server.URL)

	tests := []struct {
		name string
		sub  model.DisputeSubmission
	}{
		{"missing reason", model.DisputeSubmission{ClaimID: 1, SupportingDOI: "10.1/x"}},
		{"missing claim", model.DisputeSubmission{Reason: "r", SupportingDOI: "10.1/x"}},
		{"no evidence", model.DisputeSubmission{ClaimID: 1, Reason: "r"}},
		{"two evidence kinds", model.DisputeSubmission{ClaimID: 1, Reason: "r", SupportingDOI: "10.1/x", SupportingURL: "https://e.com"}},
		{"non-pdf file", model.DisputeSubmission{ClaimID: 1, Reason: "r", SupportingFile: "notes.txt"}},
	}

	for _, tt := range tests {
		if _, err := client.CreateDispute(context.Background(), tt.sub); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}

	if calls != 0 {
		t.Errorf("validation failures must not reach the network, got %d calls", calls)
	}
}

func TestCreateDispute_OversizeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.pdf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	// Sparse file past the limit
	if err := f.Truncate(model.MaxEvidenceFileBytes + 1); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	_, err = testClient("http://unused.invalid").CreateDispute(context.Background(), model.DisputeSubmission{
		ClaimID:        1,
		Reason:         "r",
		SupportingFile: path,
	})
	if err == nil || !strings.Contains(err.Error(), "20 MB") {
		t.Errorf("expected size limit error, got %v", err)
	}
}
