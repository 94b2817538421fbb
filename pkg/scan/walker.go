// File: pkg/scan/walker.go
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Walker discovers files beneath the scan root and applies the
// include/exclude rules. It produces entries in a deterministic order:
// directory entries are visited lexicographically, so the result does
// not depend on filesystem enumeration order.
type Walker struct {
	cfg     Config
	include *RuleSet
	exclude *RuleSet
	logger  *zap.Logger
}

// NewWalker validates the root and compiles the pattern sets. A missing
// or non-directory root yields a PathError; a malformed glob yields a
// PatternError. Both abort before any traversal.
func NewWalker(cfg Config, logger *zap.Logger) (*Walker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, &PathError{Path: cfg.Root, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: cfg.Root, Err: fmt.Errorf("not a directory")}
	}

	include, err := CompileRules(cfg.Includes, cfg.CaseSensitive)
	if err != nil {
		return nil, err
	}
	exclude, err := CompileRules(cfg.Excludes, cfg.CaseSensitive)
	if err != nil {
		return nil, err
	}

	return &Walker{cfg: cfg, include: include, exclude: exclude, logger: logger}, nil
}

// Traverse walks the tree once and returns one FileEntry per discovered
// file, in traversal order. Candidates awaiting classification carry
// StatusPending; files matched by an exclude pattern carry
// StatusExcluded. Files that match no include pattern are omitted
// before they ever become candidates. A directory matched by an exclude
// pattern is pruned whole: nothing beneath it is discovered.
func (w *Walker) Traverse() ([]FileEntry, error) {
	var entries []FileEntry

	excludeDirs := make(map[string]struct{}, len(w.cfg.ExcludeDirs))
	for _, d := range w.cfg.ExcludeDirs {
		excludeDirs[d] = struct{}{}
	}
	excludeFiles := make(map[string]struct{}, len(w.cfg.ExcludeFiles))
	for _, f := range w.cfg.ExcludeFiles {
		excludeFiles[normalizePath(f)] = struct{}{}
	}

	err := filepath.WalkDir(w.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.cfg.Root {
			return nil
		}

		relPath, relErr := filepath.Rel(w.cfg.Root, path)
		if relErr != nil {
			w.logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		relPath = normalizePath(relPath)

		if d.IsDir() {
			if _, ok := excludeDirs[d.Name()]; ok {
				w.logger.Debug("Pruning excluded directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			if _, ok := excludeDirs[relPath]; ok {
				w.logger.Debug("Pruning excluded directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			if w.exclude.MatchesDir(relPath) {
				w.logger.Debug("Pruning directory matched by exclude pattern", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		info, ok := w.statCandidate(path, d)
		if !ok {
			return nil
		}

		if _, excluded := excludeFiles[relPath]; excluded || w.exclude.Matches(relPath) {
			entries = append(entries, FileEntry{
				RelPath: relPath,
				AbsPath: path,
				Size:    info.Size(),
				Status:  StatusExcluded,
			})
			return nil
		}

		if !w.include.Empty() && !w.include.Matches(relPath) {
			return nil
		}

		entries = append(entries, FileEntry{
			RelPath: relPath,
			AbsPath: path,
			Size:    info.Size(),
			Status:  StatusPending,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("traversal failed: %w", err)
	}

	w.logger.Debug("Completed traversal", zap.Int("discovered", len(entries)))
	return entries, nil
}

// statCandidate decides whether a non-directory entry is a readable
// candidate and returns its file info. Symlinks count only when
// symlink following is enabled and the target is a regular file;
// symlinked directories are never followed, which prevents cycles.
func (w *Walker) statCandidate(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		if !w.cfg.FollowSymlinks {
			return nil, false
		}
		info, err := os.Stat(path)
		if err != nil {
			w.logger.Warn("Cannot resolve symlink", zap.String("path", path), zap.Error(err))
			return nil, false
		}
		if !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	}

	if !d.Type().IsRegular() {
		return nil, false
	}
	info, err := d.Info()
	if err != nil {
		w.logger.Warn("Failed to get file info during traversal", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return info, true
}
