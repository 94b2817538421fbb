// Package scan implements the codecat scanning pipeline: deterministic
// directory traversal, include/exclude filtering, text/binary
// classification, and concurrent content reading with stable ordering.
package scan

import (
	"fmt"
	"time"
)

// Status describes the outcome of processing a single discovered file.
type Status string

const (
	// StatusPending marks an entry that has been discovered but not yet
	// classified or read. No entry leaves the pipeline in this state
	// unless the run was cancelled.
	StatusPending Status = ""

	// StatusIncluded marks a text file whose content was captured.
	StatusIncluded Status = "included"

	// StatusBinary marks a file whose sampled prefix looked binary.
	StatusBinary Status = "skipped_binary"

	// StatusTooLarge marks a file over the configured size limit.
	StatusTooLarge Status = "skipped_too_large"

	// StatusReadError marks a file that could not be read.
	StatusReadError Status = "skipped_read_error"

	// StatusExcluded marks a file matched by an exclude pattern.
	StatusExcluded Status = "skipped_excluded"
)

// Config holds the immutable settings for a single scan run.
type Config struct {
	Root           string            // Absolute path of the directory to scan.
	Includes       []string          // Glob patterns gating candidacy; empty means match-all.
	Excludes       []string          // Glob patterns excluding files and pruning directories.
	ExcludeDirs    []string          // Exact directory names pruned outright (e.g. ".git").
	ExcludeFiles   []string          // Exact relative paths excluded (e.g. the output file itself).
	MaxFileSize    int64             // Size ceiling in bytes; larger files are skipped, never truncated.
	FollowSymlinks bool              // Admit symlinks that resolve to regular files.
	CaseSensitive  bool              // Pattern matching case sensitivity.
	Workers        int               // Worker pool size; <=0 selects runtime.NumCPU().
	LanguageHints  map[string]string // Extra extension/filename to language-tag mappings.
}

// FileEntry is the record produced for every discovered file.
type FileEntry struct {
	RelPath  string // Path relative to the scan root, forward slashes.
	AbsPath  string // Absolute filesystem path.
	Size     int64  // Size in bytes at discovery time.
	Status   Status // Processing outcome.
	Language string // Detected language tag; set only for included entries.
	Content  string // Captured content; set only for included entries.
	Cause    string // Human-readable skip cause; set only for read errors.
}

// Result is the complete outcome of one scan run. Entries are in
// traversal order, which is stable across runs and worker counts.
type Result struct {
	Root      string
	RunID     string
	StartedAt time.Time
	Entries   []FileEntry
	Stats     Stats
}

// LanguageStat holds per-language tallies.
type LanguageStat struct {
	Files int
	Lines int
}

// Stats aggregates counts over a scan result.
type Stats struct {
	Included   int
	Binary     int
	TooLarge   int
	ReadErrors int
	Excluded   int
	TotalLines int
	TotalBytes int64
	Languages  map[string]LanguageStat
}

// Total returns the number of entries the stats were computed from.
func (s Stats) Total() int {
	return s.Included + s.Binary + s.TooLarge + s.ReadErrors + s.Excluded
}

// PathError reports a fatal problem with the scan root. It aborts the
// run before any traversal happens.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid scan root %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// PatternError reports a malformed include or exclude glob. It aborts
// the run before any traversal happens.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
