// File: pkg/scan/language.go
package scan

import (
	"path"
	"strings"
)

// defaultLanguageHints maps file extensions and exact (lowercased)
// filenames to the language tags used on fenced code blocks. User
// configuration can extend or override it per run.
var defaultLanguageHints = map[string]string{
	".py":           "python",
	".pyw":          "python",
	".java":         "java",
	".js":           "javascript",
	".ts":           "typescript",
	".html":         "html",
	".css":          "css",
	".scss":         "scss",
	".go":           "go",
	".rs":           "rust",
	".c":            "c",
	".cpp":          "cpp",
	".h":            "c",
	".hpp":          "cpp",
	".cs":           "csharp",
	".sh":           "bash",
	".ps1":          "powershell",
	".rb":           "ruby",
	".php":          "php",
	".sql":          "sql",
	".json":         "json",
	".xml":          "xml",
	".yml":          "yaml",
	".yaml":         "yaml",
	".toml":         "toml",
	".ini":          "ini",
	".cfg":          "ini",
	".md":           "markdown",
	".txt":          "text",
	".dockerfile":   "dockerfile",
	"dockerfile":    "dockerfile",
	"makefile":      "makefile",
	".gitignore":    "text",
	".dockerignore": "text",
	".flake8":       "ini",
}

// interpreterLanguages maps interpreter binary names found in a
// shebang line to language tags.
var interpreterLanguages = map[string]string{
	"sh":     "bash",
	"bash":   "bash",
	"zsh":    "bash",
	"python": "python",
	"ruby":   "ruby",
	"perl":   "perl",
	"node":   "javascript",
}

// fallbackLanguage is the tag applied when nothing better is known.
const fallbackLanguage = "text"

// Classifier infers language tags for included files. It never fails;
// unknown inputs degrade to the plain-text tag.
type Classifier struct {
	hints map[string]string
}

// NewClassifier builds a Classifier from the built-in hint table merged
// with any user-supplied overrides.
func NewClassifier(extra map[string]string) *Classifier {
	hints := make(map[string]string, len(defaultLanguageHints)+len(extra))
	for k, v := range defaultLanguageHints {
		hints[strings.ToLower(k)] = v
	}
	for k, v := range extra {
		hints[strings.ToLower(k)] = v
	}
	return &Classifier{hints: hints}
}

// Language returns the tag for a file, checking the exact filename
// first (so "Dockerfile" wins over a ".dockerfile" rule), then the
// extension, then an interpreter directive in the sample.
func (c *Classifier) Language(relPath string, sample []byte) string {
	base := strings.ToLower(path.Base(relPath))
	if lang, ok := c.hints[base]; ok {
		return lang
	}
	if ext := strings.ToLower(path.Ext(relPath)); ext != "" {
		if lang, ok := c.hints[ext]; ok {
			return lang
		}
		return fallbackLanguage
	}
	if lang, ok := shebangLanguage(sample); ok {
		return lang
	}
	return fallbackLanguage
}

// shebangLanguage inspects a leading "#!" line and maps the interpreter
// to a language tag. Handles the "#!/usr/bin/env python3" form.
func shebangLanguage(sample []byte) (string, bool) {
	line := string(sample)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, "#!") {
		return "", false
	}

	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return "", false
	}
	interp := path.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = path.Base(fields[1])
	}
	// Strip a trailing version suffix like "python3.12".
	interp = strings.TrimRight(interp, "0123456789.")
	lang, ok := interpreterLanguages[interp]
	return lang, ok
}
