// File: cmd/summary.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"codecat/pkg/scan"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// summaryColors bundles the color painters for one render, disabled
// when the destination is not a terminal.
type summaryColors struct {
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	bold   *color.Color
}

func newSummaryColors(w io.Writer) summaryColors {
	c := summaryColors{
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		bold:   color.New(color.Bold),
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd())
	}
	if !useColor {
		for _, painter := range []*color.Color{c.green, c.yellow, c.red, c.bold} {
			painter.DisableColor()
		}
	}
	return c
}

// printSummary renders the per-status scan summary.
func printSummary(w io.Writer, result *scan.Result) {
	c := newSummaryColors(w)
	stats := result.Stats

	fmt.Fprintf(w, "\n%s\n", c.bold.Sprint("Scan Summary"))
	fmt.Fprintf(w, "  %-14s %5d  Successfully read and included\n",
		c.green.Sprint("Included"), stats.Included)
	fmt.Fprintf(w, "  %-14s %5d  Detected as binary and skipped\n",
		c.yellow.Sprint("Binary"), stats.Binary)
	fmt.Fprintf(w, "  %-14s %5d  Over the size limit\n",
		c.yellow.Sprint("Too large"), stats.TooLarge)
	fmt.Fprintf(w, "  %-14s %5d  Could not be read\n",
		c.red.Sprint("Read errors"), stats.ReadErrors)
	fmt.Fprintf(w, "  %-14s %5d  Matched an exclude pattern\n",
		c.yellow.Sprint("Excluded"), stats.Excluded)
	fmt.Fprintf(w, "  %-14s %5d\n", c.bold.Sprint("Total"), stats.Total())
	fmt.Fprintf(w, "  %-14s %5d lines, %d bytes\n", "Content", stats.TotalLines, stats.TotalBytes)
}

// printLanguageTable renders the per-language breakdown sorted by line
// count, largest first.
func printLanguageTable(w io.Writer, stats scan.Stats) {
	c := newSummaryColors(w)

	type row struct {
		lang string
		stat scan.LanguageStat
	}
	rows := make([]row, 0, len(stats.Languages))
	for lang, stat := range stats.Languages {
		rows = append(rows, row{lang, stat})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].stat.Lines != rows[j].stat.Lines {
			return rows[i].stat.Lines > rows[j].stat.Lines
		}
		return rows[i].lang < rows[j].lang
	})

	fmt.Fprintf(w, "\n%s\n", c.bold.Sprint("File Type Statistics"))
	fmt.Fprintf(w, "  %-16s %8s %12s %10s\n", "Language", "Files", "Lines", "% of Lines")
	for _, r := range rows {
		percentage := 0.0
		if stats.TotalLines > 0 {
			percentage = float64(r.stat.Lines) / float64(stats.TotalLines) * 100
		}
		fmt.Fprintf(w, "  %-16s %8d %12d %9.1f%%\n",
			c.green.Sprint(r.lang), r.stat.Files, r.stat.Lines, percentage)
	}
	fmt.Fprintf(w, "  %-16s %8d %12d %10s\n",
		c.bold.Sprint("Total"), stats.Included, stats.TotalLines, "100.0%")
}
