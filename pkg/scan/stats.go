// File: pkg/scan/stats.go
package scan

import "strings"

// Summarize tallies a set of entries into a Stats record. It is a pure
// function of the entries and can run whether or not a document is
// being assembled, so a stats-only run reports exactly what a full run
// would contain.
func Summarize(entries []FileEntry) Stats {
	stats := Stats{Languages: make(map[string]LanguageStat)}

	for _, entry := range entries {
		switch entry.Status {
		case StatusIncluded:
			stats.Included++
			lines := CountLines(entry.Content)
			stats.TotalLines += lines
			stats.TotalBytes += int64(len(entry.Content))

			lang := stats.Languages[entry.Language]
			lang.Files++
			lang.Lines += lines
			stats.Languages[entry.Language] = lang
		case StatusBinary:
			stats.Binary++
		case StatusTooLarge:
			stats.TooLarge++
		case StatusReadError:
			stats.ReadErrors++
		case StatusExcluded:
			stats.Excluded++
		}
	}
	return stats
}

// CountLines counts content lines the way splitting on newlines would:
// empty content has zero lines and a trailing newline does not add one.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
