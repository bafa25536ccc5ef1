// Package pipeline orchestrates the extraction run: scan, per-file
// extraction, size-bounded splitting, statistics.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"locextract/internal/extract"
	"locextract/internal/filewalker"
	"locextract/internal/splitter"
	"locextract/internal/worker"

	"github.com/rs/zerolog/log"
)

// Runner wires the scanner, engine and splitter for one run.
type Runner struct {
	opts    extract.Options
	workers int
}

// NewRunner creates a runner. workers bounds per-file extraction
// concurrency; values below 1 mean sequential.
func NewRunner(opts extract.Options, workers int) *Runner {
	return &Runner{opts: opts, workers: workers}
}

// Run extracts all texts under root. The file list is sorted lexically
// before dispatch so the final chunk order is reproducible regardless of
// directory enumeration or completion order. A scan failure is non-fatal:
// extraction proceeds on whatever file list was accumulated, possibly none.
// Unreadable files count toward TotalFilesProcessed but contribute zero
// chunks. Cancelling the context aborts the run with the context's error.
func (r *Runner) Run(ctx context.Context, root string) (*extract.Result, error) {
	start := time.Now()

	w := filewalker.NewWalker(r.opts)
	files, err := w.Walk(root)
	if err != nil {
		log.Warn().Err(err).Int("files", len(files)).Msg("Scan failed, continuing with partial file list")
	}

	sort.Strings(files)

	engine := extract.NewEngine(r.opts)
	pool := worker.NewPool(r.workers, func(ctx context.Context, path string) ([]extract.Chunk, error) {
		return engine.ExtractFile(path)
	})
	jobs := pool.Execute(ctx, files)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}

	var chunks []extract.Chunk
	failed := 0
	for _, job := range jobs {
		if job.Err != nil {
			failed++
			continue
		}
		chunks = append(chunks, job.Result...)
	}

	chunks = splitter.New(r.opts).Split(chunks)

	result := &extract.Result{
		Chunks:              chunks,
		TotalFilesProcessed: len(files),
		TotalTextsFound:     len(chunks),
		ProcessingTime:      time.Since(start).Seconds(),
	}

	log.Info().
		Int("files", result.TotalFilesProcessed).
		Int("failed_files", failed).
		Int("texts", result.TotalTextsFound).
		Float64("seconds", result.ProcessingTime).
		Msg("Extraction complete")

	return result, nil
}
