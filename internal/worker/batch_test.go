package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dkalenko/medfact/internal/model"
	"golang.org/x/time/rate"
)

// fakeVerifier records which claims it saw and fails on request
type fakeVerifier struct {
	mu     sync.Mutex
	seen   []string
	failOn string
}

func (f *fakeVerifier) VerifyClaim(ctx context.Context, claimText string, forceRefresh bool) (*model.VerificationResult, error) {
	f.mu.Lock()
	f.seen = append(f.seen, claimText)
	f.mu.Unlock()

	if claimText == f.failOn {
		return nil, errors.New("backend unavailable")
	}
	return &model.VerificationResult{
		Text:    claimText,
		Verdict: model.Verdict{Label: "valid", Confidence: 0.9},
	}, nil
}

func TestBatchProcessor_ProcessClaims(t *testing.T) {
	verifier := &fakeVerifier{failOn: "bad claim"}
	processor := NewBatchProcessor(verifier, 4, 100, 10)

	claims := []string{"claim one", "bad claim", "claim three"}
	results := processor.ProcessClaims(context.Background(), claims, false)

	if len(results) != len(claims) {
		t.Fatalf("expected %d results, got %d", len(claims), len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			if r.ClaimText != "bad claim" {
				t.Errorf("unexpected failing claim %q", r.ClaimText)
			}
		} else if r.Result == nil {
			t.Errorf("success without result for %q", r.ClaimText)
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}

	verifier.mu.Lock()
	defer verifier.mu.Unlock()
	if len(verifier.seen) != len(claims) {
		t.Errorf("expected %d backend calls, got %d", len(claims), len(verifier.seen))
	}
}

// A claims file several times larger than the worker count has to drain
// completely; earlier the pool wedged once the result buffer filled up.
func TestBatchProcessor_LargeBatchCompletes(t *testing.T) {
	verifier := &fakeVerifier{}
	processor := NewBatchProcessor(verifier, 4, 1000, 100)

	claims := make([]string, 25)
	for i := range claims {
		claims[i] = fmt.Sprintf("claim number %d", i)
	}

	done := make(chan []*VerifyResult, 1)
	go func() { done <- processor.ProcessClaims(context.Background(), claims, false) }()

	select {
	case results := <-done:
		if len(results) != len(claims) {
			t.Fatalf("expected %d results, got %d", len(claims), len(results))
		}
		for _, r := range results {
			if r.GetError() != nil {
				t.Errorf("unexpected error for %q: %v", r.ClaimText, r.GetError())
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch did not complete in time")
	}
}

// Cancelling the batch context aborts claims still waiting on the rate
// limiter instead of letting them run to completion.
func TestBatchProcessor_ContextCancel(t *testing.T) {
	verifier := &fakeVerifier{}
	processor := NewBatchProcessor(verifier, 2, 1.0/60, 1)
	// One request per minute with a burst of one: only the first claim
	// proceeds, the rest block on the limiter until cancelled.
	processor.limiter = &Limiter{limiter: rate.NewLimiter(rate.Limit(1.0/60), 1)}

	ctx, cancel := context.WithCancel(context.Background())
	claims := []string{"claim one", "claim two", "claim three"}

	done := make(chan []*VerifyResult, 1)
	go func() { done <- processor.ProcessClaims(ctx, claims, false) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case results := <-done:
		cancelled := 0
		for _, r := range results {
			if errors.Is(r.GetError(), context.Canceled) {
				cancelled++
			}
		}
		if cancelled == 0 {
			t.Error("expected at least one claim aborted by cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not stop after context cancel")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&fakeVerifier{}, 2, 100, 10)
	results := processor.ProcessClaims(context.Background(), nil, false)
	if len(results) != 0 {
		t.Errorf("expected no results for empty input, got %d", len(results))
	}
}

func TestReadClaimsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.txt")
	content := "claim one\n\n# a comment\n  claim two  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	claims, err := ReadClaimsFile(path)
	if err != nil {
		t.Fatalf("ReadClaimsFile failed: %v", err)
	}

	want := []string{"claim one", "claim two"}
	if len(claims) != len(want) {
		t.Fatalf("expected %d claims, got %d: %v", len(want), len(claims), claims)
	}
	for i := range want {
		if claims[i] != want[i] {
			t.Errorf("claim %d: expected %q, got %q", i, want[i], claims[i])
		}
	}
}

func TestReadClaimsFile_Missing(t *testing.T) {
	if _, err := ReadClaimsFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
