// File: pkg/scan/scan.go
package scan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run executes one scan: traverse, classify and read concurrently, then
// summarize. The returned entries are in traversal order regardless of
// worker count or read completion order. The core holds no state across
// runs; everything lives in the returned Result.
//
// On cancellation the result carries whatever work had completed, and
// ctx.Err() is returned alongside it so the caller can decide whether a
// partial result is still useful.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := &Result{
		Root:      cfg.Root,
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	runLogger := logger.With(zap.String("runID", result.RunID))
	runLogger.Info("Starting scan", zap.String("root", cfg.Root))
	startTime := time.Now()

	walker, err := NewWalker(cfg, runLogger)
	if err != nil {
		return nil, err
	}

	entries, err := walker.Traverse()
	if err != nil {
		return nil, err
	}

	reader := NewReader(cfg, runLogger)
	reader.ReadAll(ctx, entries)

	// Entries still pending were never dispatched before cancellation;
	// they are dropped so the stats reflect exactly the completed work.
	if ctx.Err() != nil {
		completed := entries[:0]
		for _, entry := range entries {
			if entry.Status != StatusPending {
				completed = append(completed, entry)
			}
		}
		entries = completed
	}

	result.Entries = entries
	result.Stats = Summarize(entries)

	runLogger.Info("Scan completed",
		zap.Int("included", result.Stats.Included),
		zap.Int("skipped", result.Stats.Total()-result.Stats.Included),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, ctx.Err()
}
