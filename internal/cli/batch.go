package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dkalenko/medfact/internal/api"
	"github.com/dkalenko/medfact/internal/cache"
	"github.com/dkalenko/medfact/internal/model"
	"github.com/dkalenko/medfact/internal/notify"
	"github.com/dkalenko/medfact/internal/render"
	"github.com/dkalenko/medfact/internal/verify"
	"github.com/dkalenko/medfact/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRPS     float64
	batchBurst   int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch reads claims from a file (one per line, blank lines and
#-comments skipped) and verifies them concurrently. Requests against the
backend are rate limited. Each verdict is written to its own JSON file.

Example:
  medfact batch claims.txt
  medfact batch claims.txt --concurrency 8 --output-dir ./verdicts
  medfact batch claims.txt --rps 1 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./medfact-verdicts", "output directory for verdict files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&batchRPS, "rps", 0, "max requests per second against the backend (0 = config default)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 0, "rate limit burst size (0 = config default)")
	batchCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass cached verdicts, local and backend")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the local verdict cache")
	batchCmd.Flags().StringVar(&backendURL, "backend", "", "verification backend base URL")
}

// poolVerifier runs each batch claim through its own verification flow, so
// the single-in-flight rule holds per claim rather than across the batch.
// The flows share one client and one verdict cache.
type poolVerifier struct {
	client   *api.Client
	notifier *notify.Center
	opts     []verify.FlowOption
}

func (p *poolVerifier) VerifyClaim(ctx context.Context, claimText string, forceRefresh bool) (*model.VerificationResult, error) {
	opts := append([]verify.FlowOption{verify.WithNotifier(p.notifier)}, p.opts...)
	flow := verify.NewFlow(p.client, opts...)
	defer flow.Close()
	return flow.Submit(ctx, claimText, forceRefresh)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if backendURL != "" {
		cfg.HTTP.BaseURL = backendURL
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Concurrency.Workers = concurrency
	if batchRPS > 0 {
		cfg.RateLimiting.RequestsPerSecond = batchRPS
	}
	if batchBurst > 0 {
		cfg.RateLimiting.BurstSize = batchBurst
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	client := api.NewClient(cfg.HTTP)
	notifier := newNotifier()

	verifier := &poolVerifier{client: client, notifier: notifier}
	if cfg.Cache.Enabled {
		shared := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		verifier.opts = append(verifier.opts, verify.WithCache(shared, cfg.Cache.DiskTTL))
	}

	processor := worker.NewBatchProcessor(verifier, cfg.Concurrency.Workers,
		cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	results, err := processor.ProcessFile(ctx, file, forceRefresh)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := render.NewRenderer(false)
	successCount := 0
	failureCount := 0
	usedSlugs := make(map[string]int)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %q: %v\n", result.ClaimText, result.Error)
			continue
		}

		successCount++
		info := render.Label(result.Result.Verdict.Label)
		path := filepath.Join(outputDir, uniqueSlug(usedSlugs, result.ClaimText)+".json")
		if err := renderer.WriteJSONFile(result.Result, path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %q: write verdict: %v\n", result.ClaimText, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "ok   %q -> %s (%d%%)\n", result.ClaimText, info.Display,
			render.Confidence(result.Result.Verdict.Confidence))
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:    %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "Output:   %s\n", outputDir)

	return nil
}

// claimSlug derives a safe file name from claim text
func claimSlug(claim string) string {
	slug := strings.ToLower(strings.TrimSpace(claim))
	mapper := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}
	slug = strings.Map(mapper, slug)
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = slug[:80]
	}
	if slug == "" {
		slug = "claim"
	}
	return slug
}

// uniqueSlug disambiguates claims whose slugs collide (punctuation-only
// differences, shared 80-char prefixes) so no verdict file is overwritten
func uniqueSlug(used map[string]int, claim string) string {
	base := claimSlug(claim)
	slug := base
	for n := 2; used[slug] > 0; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	used[slug] = 1
	return slug
}
