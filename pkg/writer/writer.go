// Package writer persists the generated document. Writes go through a
// temp file in the target directory followed by a rename, under an
// exclusive file lock, so an interrupted or concurrent run never leaves
// a partial or interleaved document behind.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// Write atomically replaces the file at path with data.
func Write(path string, data []byte, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("Failed to release output lock", zap.String("path", path), zap.Error(err))
		}
		if err := os.Remove(lock.Path()); err != nil && !os.IsNotExist(err) {
			logger.Debug("Failed to remove lock file", zap.String("path", lock.Path()), zap.Error(err))
		}
	}()

	// The temp file lives in the target directory so the final rename
	// stays on one filesystem and is atomic.
	tempFile, err := os.CreateTemp(dir, ".codecat-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize output file: %w", err)
	}

	logger.Debug("Successfully wrote output file", zap.String("path", path), zap.Int("sizeBytes", len(data)))
	return nil
}
