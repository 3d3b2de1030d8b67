package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kavach-labs/kavach/internal/logging"
	"github.com/kavach-labs/kavach/internal/pipeline"
	"github.com/kavach-labs/kavach/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Triage multiple call transcripts in parallel",
	Long: `Batch processes multiple transcripts concurrently:
- Read transcript file paths from a manifest (one per line,
  relative paths resolved against the manifest's directory)
- Triage transcripts in parallel with configurable worker count
- Generate individual JSON and Markdown reports per call

Example:
  kavach batch calls.txt
  kavach batch calls.txt --concurrency 10 --output-dir ./reports
  kavach batch calls.txt --llm --llm-provider ollama --llm-model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./kavach-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared triage flags
	batchCmd.Flags().DurationVar(&timeout, "run-timeout", 2*time.Minute, "timeout for individual triage runs")
	batchCmd.Flags().IntVar(&maxTurns, "max-turns", 8, "stage turn ceiling per run")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noStore, "no-store", false, "disable result archiving and deduplication")
	batchCmd.Flags().StringVar(&storeDir, "store-dir", "", "archive records to this directory (default: in-memory)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM reasoning and decision stages")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")

	// Alert flags
	batchCmd.Flags().StringVar(&familyContact, "family-contact", "", "family phone number for escalation alerts")
	batchCmd.Flags().StringVar(&policeStation, "police-station", "local cybercrime cell", "police desk for CRITICAL escalations")
	batchCmd.Flags().StringVar(&seniorName, "senior-name", "the senior citizen", "name used in family alerts")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\nKavach batch triage\n")
	fmt.Fprintf(os.Stderr, "  Manifest:   %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir: %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:    %v\n\n", batchTimeout)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:        %s/%s\n\n", llmProvider, cfg.LLM.Model)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := logging.Must(verbose)
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	if llmEnabled && cfg.Concurrency.ProviderRate > 0 {
		limiter := worker.NewLimiter(cfg.Concurrency.ProviderRate, cfg.Concurrency.ProviderBurst)
		processor.SetLimiter(limiter, llmProvider)
	}

	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		slug := reportSlug(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Record, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Record, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "OK   %s (%s, score %d/100)\n",
			result.Path, result.Record.Verdict.Level, result.Record.Verdict.Score)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d ok, %d failed, reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// reportSlug derives the report base name from a transcript path
func reportSlug(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '-'
		}
		return r
	}, base)

	if len(base) > 100 {
		base = base[:100]
	}
	if base == "" {
		base = "call"
	}
	return base
}
