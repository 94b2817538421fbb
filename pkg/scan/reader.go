// File: pkg/scan/reader.go
package scan

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Reader drains the pending entries of a traversal through a
// fixed-size worker pool. Each job carries the index of its slot in the
// entries slice and every worker writes only to its own slot, so the
// result order is the traversal order no matter which worker finishes
// first, and no locking on shared state is needed.
type Reader struct {
	cfg        Config
	classifier *Classifier
	logger     *zap.Logger
}

// NewReader builds a Reader for one run.
func NewReader(cfg Config, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		cfg:        cfg,
		classifier: NewClassifier(cfg.LanguageHints),
		logger:     logger,
	}
}

// ReadAll classifies and reads every pending entry in place. It returns
// once all dispatched work has finished (the collection barrier).
// Cancellation is cooperative: workers stop dequeuing once ctx is done,
// already-dispatched reads run to completion, and untouched entries are
// left pending.
func (r *Reader) ReadAll(ctx context.Context, entries []FileEntry) {
	var pending []int
	for i := range entries {
		if entries[i].Status == StatusPending {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return
	}

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		r.logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan int, len(pending))
	for _, i := range pending {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	r.logger.Debug("Initializing worker pool", zap.Int("workers", workers), zap.Int("files", len(pending)))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		workerLogger := r.logger.With(zap.Int("workerID", w))
		go func() {
			defer wg.Done()
			r.worker(ctx, jobs, entries, workerLogger)
		}()
	}
	wg.Wait()
}

// worker processes slot indices from the jobs channel until the channel
// drains or the run is cancelled.
func (r *Reader) worker(ctx context.Context, jobs <-chan int, entries []FileEntry, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Worker stopping on cancellation")
			return
		case i, ok := <-jobs:
			if !ok {
				return
			}
			r.processEntry(&entries[i], logger)
		}
	}
}

// processEntry fills in one slot: size check, classification on a
// bounded sample, then a full content read. All per-file failures are
// converted into a status, never propagated.
func (r *Reader) processEntry(entry *FileEntry, logger *zap.Logger) {
	if r.cfg.MaxFileSize > 0 && entry.Size > r.cfg.MaxFileSize {
		logger.Debug("Skipping file over size limit",
			zap.String("file", entry.RelPath),
			zap.Int64("sizeBytes", entry.Size),
			zap.Int64("maxBytes", r.cfg.MaxFileSize))
		entry.Status = StatusTooLarge
		return
	}

	file, err := os.Open(entry.AbsPath)
	if err != nil {
		logger.Warn("Failed to open file", zap.String("file", entry.RelPath), zap.Error(err))
		entry.Status = StatusReadError
		entry.Cause = err.Error()
		return
	}
	defer file.Close()

	sample := make([]byte, SampleSize)
	n, err := io.ReadFull(file, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		logger.Warn("Failed to sample file", zap.String("file", entry.RelPath), zap.Error(err))
		entry.Status = StatusReadError
		entry.Cause = err.Error()
		return
	}
	sample = sample[:n]

	if IsBinary(sample) {
		logger.Debug("Detected binary file", zap.String("file", entry.RelPath))
		entry.Status = StatusBinary
		return
	}

	rest, err := io.ReadAll(file)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("file", entry.RelPath), zap.Error(err))
		entry.Status = StatusReadError
		entry.Cause = err.Error()
		return
	}

	entry.Status = StatusIncluded
	entry.Language = r.classifier.Language(entry.RelPath, sample)
	entry.Content = string(sample) + string(rest)
	logger.Debug("Captured file content",
		zap.String("file", entry.RelPath),
		zap.String("language", entry.Language),
		zap.Int("contentSizeBytes", len(entry.Content)))
}
