package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kavach-labs/kavach/internal/model"
)

// Analyzer defines the interface for triaging one transcript
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (*model.CallRecord, error)
}

// AnalyzeJob triages the transcript held in one file
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer

	// Limiter gates the shared LLM/transcription backend; nil disables
	// rate limiting for this job.
	Limiter  *Limiter
	Provider string
}

// Execute executes the analyze job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Provider); err != nil {
			return &AnalyzeResult{
				Path:  j.Path,
				Error: fmt.Errorf("rate limit wait: %w", err),
			}
		}
	}

	transcript, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{
			Path:  j.Path,
			Error: fmt.Errorf("read transcript: %w", err),
		}
	}

	record, err := j.Analyzer.Analyze(ctx, string(transcript))
	if err != nil {
		return &AnalyzeResult{
			Path:  j.Path,
			Error: err,
		}
	}
	return &AnalyzeResult{
		Path:   j.Path,
		Record: record,
	}
}

// AnalyzeResult represents the result of one transcript triage
type AnalyzeResult struct {
	Path   string
	Record *model.CallRecord
	Error  error
}

// GetError returns the error from the analyze result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor triages multiple transcript files concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
	provider    string
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// SetLimiter installs a per-provider rate limiter applied before each
// triage run. Without one, workers run at full speed.
func (b *BatchProcessor) SetLimiter(limiter *Limiter, provider string) {
	b.limiter = limiter
	b.provider = provider
}

// ProcessPaths triages the given transcript files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	// Create worker pool
	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit jobs
	for _, path := range paths {
		job := &AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
			Provider: b.provider,
		}
		pool.Submit(job)
	}

	// Wait for all jobs to complete
	results := pool.Wait()

	// Convert to AnalyzeResults
	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessManifest reads transcript paths from a manifest file and triages
// them concurrently. Paths are relative to the manifest's directory.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadManifest reads transcript file paths from a manifest (one per line)
func ReadManifest(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	baseDir := filepath.Dir(manifestPath)

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
