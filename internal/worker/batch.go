package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dkalenko/medfact/internal/model"
)

// ClaimVerifier runs one claim through a complete verification flow
type ClaimVerifier interface {
	VerifyClaim(ctx context.Context, claimText string, forceRefresh bool) (*model.VerificationResult, error)
}

// VerifyJob verifies one claim from a batch
type VerifyJob struct {
	ClaimText    string
	ForceRefresh bool
	Verifier     ClaimVerifier
	Limiter      *Limiter
}

// Execute runs the job, honoring the shared rate limit
func (j *VerifyJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &VerifyResult{ClaimText: j.ClaimText, Error: err}
		}
	}

	result, err := j.Verifier.VerifyClaim(ctx, j.ClaimText, j.ForceRefresh)
	return &VerifyResult{
		ClaimText: j.ClaimText,
		Result:    result,
		Error:     err,
	}
}

// VerifyResult is the outcome of one batch claim
type VerifyResult struct {
	ClaimText string
	Result    *model.VerificationResult
	Error     error
}

// GetError returns the job error, if any
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	verifier    ClaimVerifier
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a processor with the given concurrency and
// backend rate limit
func NewBatchProcessor(verifier ClaimVerifier, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// ProcessClaims verifies the given claims concurrently
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string, forceRefresh bool) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&VerifyJob{
			ClaimText:    claim,
			ForceRefresh: forceRefresh,
			Verifier:     b.verifier,
			Limiter:      b.limiter,
		})
	}

	raw := pool.Wait()

	results := make([]*VerifyResult, 0, len(raw))
	for _, r := range raw {
		if vr, ok := r.(*VerifyResult); ok {
			results = append(results, vr)
		}
	}
	return results
}

// ProcessFile reads claims from a file (one per line, blank lines and
// #-comments skipped) and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string, forceRefresh bool) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFile(path)
	if err != nil {
		return nil, err
	}
	return b.ProcessClaims(ctx, claims, forceRefresh), nil
}

// ReadClaimsFile loads claims from a file, one per line
func ReadClaimsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}

	return claims, nil
}
