package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 1, CountLines("print('hi')\n"))
	assert.Equal(t, 1, CountLines("no trailing newline"))
	assert.Equal(t, 3, CountLines("a\nb\nc\n"))
	assert.Equal(t, 3, CountLines("a\nb\nc"))
}

func TestSummarize(t *testing.T) {
	entries := []FileEntry{
		{RelPath: "a.py", Status: StatusIncluded, Language: "python", Content: "print('hi')\n"},
		{RelPath: "b.py", Status: StatusIncluded, Language: "python", Content: "x = 1\ny = 2\n"},
		{RelPath: "main.go", Status: StatusIncluded, Language: "go", Content: "package main\n"},
		{RelPath: "img.bin", Status: StatusBinary},
		{RelPath: "huge.sql", Status: StatusTooLarge},
		{RelPath: "secret", Status: StatusReadError, Cause: "permission denied"},
		{RelPath: "app.log", Status: StatusExcluded},
	}

	stats := Summarize(entries)

	assert.Equal(t, 3, stats.Included)
	assert.Equal(t, 1, stats.Binary)
	assert.Equal(t, 1, stats.TooLarge)
	assert.Equal(t, 1, stats.ReadErrors)
	assert.Equal(t, 1, stats.Excluded)
	assert.Equal(t, 7, stats.Total())
	assert.Equal(t, 4, stats.TotalLines)
	assert.Equal(t, int64(12+12+13), stats.TotalBytes)

	assert.Equal(t, LanguageStat{Files: 2, Lines: 3}, stats.Languages["python"])
	assert.Equal(t, LanguageStat{Files: 1, Lines: 1}, stats.Languages["go"])
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	assert.Equal(t, 0, stats.Total())
	assert.Empty(t, stats.Languages)
}
