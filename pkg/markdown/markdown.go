// Package markdown assembles a scan result into the final aggregated
// document. Assembly is a pure function of the result: it starts only
// after all concurrent reads are done, emits sections in traversal
// order, and leaves persistence to the caller.
package markdown

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"codecat/pkg/scan"
)

// Options controls the optional document sections.
type Options struct {
	Header bool // Emit the title and metadata header.
	Tree   bool // Emit the project tree section.
}

// sectionSeparator sits between per-file blocks.
const sectionSeparator = "\n\n---\n\n"

// Generate renders the aggregated Markdown document. Included files are
// emitted as fenced, language-tagged blocks with their content byte for
// byte; every skipped file is listed with its reason in a summary
// section, never silently dropped.
func Generate(result *scan.Result, opts Options) string {
	var mainParts []string

	if opts.Header {
		mainParts = append(mainParts, headerSection(result))
	}

	if opts.Tree {
		if tree := treeSection(result.Entries); tree != "" {
			mainParts = append(mainParts, tree)
		}
	}

	var fileBlocks []string
	for _, entry := range result.Entries {
		if entry.Status != scan.StatusIncluded {
			continue
		}
		fileBlocks = append(fileBlocks, fileSection(entry))
	}

	if len(fileBlocks) > 0 {
		mainParts = append(mainParts, strings.Join(fileBlocks, sectionSeparator))
	} else {
		mainParts = append(mainParts, "_No files were aggregated._")
	}

	if skipped := skippedSection(result.Entries); skipped != "" {
		mainParts = append(mainParts, skipped)
	}

	// The document always ends with a single trailing newline.
	return strings.TrimRight(strings.Join(mainParts, "\n\n"), "\n") + "\n"
}

// headerSection renders the title and the run metadata line. The
// metadata line is the only part of the document that varies between
// identical runs.
func headerSection(result *scan.Result) string {
	var b strings.Builder
	rootName := filepath.Base(result.Root)
	fmt.Fprintf(&b, "# Codecat: Aggregated Code for '%s'\n\n", rootName)
	fmt.Fprintf(&b, "Generated from `%d` files found in `%s`.\n",
		len(result.Entries), filepath.ToSlash(result.Root))
	fmt.Fprintf(&b, "Run `%s` at `%s`.", result.RunID, result.StartedAt.Format(time.RFC3339))
	return b.String()
}

// fileSection renders one included file: a path heading and the content
// inside a collision-safe fence annotated with the language tag.
func fileSection(entry scan.FileEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## File: `%s`\n\n", entry.RelPath)

	if strings.TrimSpace(entry.Content) == "" {
		b.WriteString("_(File is empty)_")
		return b.String()
	}

	fence := scan.Fence(entry.Content)
	fmt.Fprintf(&b, "%s%s\n%s\n%s", fence, entry.Language, entry.Content, fence)
	return b.String()
}

// skippedSection lists every skipped entry with its specific reason.
func skippedSection(entries []scan.FileEntry) string {
	var lines []string
	for _, entry := range entries {
		if entry.Status == scan.StatusIncluded {
			continue
		}
		lines = append(lines, fmt.Sprintf("- `%s`: %s", entry.RelPath, skipReason(entry)))
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Skipped Files\n\n" + strings.Join(lines, "\n")
}

// skipReason maps a status to the human-readable reason shown in the
// skipped files summary.
func skipReason(entry scan.FileEntry) string {
	switch entry.Status {
	case scan.StatusBinary:
		return "binary file, content not included"
	case scan.StatusTooLarge:
		return "exceeds the configured size limit"
	case scan.StatusReadError:
		if entry.Cause != "" {
			return "read error: " + entry.Cause
		}
		return "read error"
	case scan.StatusExcluded:
		return "matched an exclude pattern"
	default:
		return string(entry.Status)
	}
}
