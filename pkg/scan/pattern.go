// File: pkg/scan/pattern.go
package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern translation.
var (
	doubleStarMiddlePattern      = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern    = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern     = regexp.MustCompile(`^\*\*/`)
	singleStarReplacementPattern = regexp.MustCompile(`\*`)
	directoryEndPattern          = regexp.MustCompile(`/$`)
	rootRelativePattern          = regexp.MustCompile(`^/`)
)

// rule is a single compiled glob pattern.
type rule struct {
	line  string         // Original pattern text.
	re    *regexp.Regexp // Matches files and directories covered by the pattern.
	dirRe *regexp.Regexp // Matches directories whose whole subtree the pattern covers; nil otherwise.
}

// RuleSet matches relative paths against an ordered list of glob
// patterns. Patterns use `*` (within a segment), `?`, and `**` (across
// segments). A bare name such as "node_modules" matches that path at
// any depth and everything beneath it; a trailing "/" or "/*" denotes
// directory contents.
type RuleSet struct {
	rules []rule
}

// CompileRules translates glob patterns into a RuleSet. A malformed or
// blank pattern yields a PatternError.
func CompileRules(patterns []string, caseSensitive bool) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, p := range patterns {
		r, err := compileRule(p, caseSensitive)
		if err != nil {
			return nil, err
		}
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// Empty reports whether the set contains no patterns.
func (rs *RuleSet) Empty() bool {
	return rs == nil || len(rs.rules) == 0
}

// Matches reports whether the relative path matches any pattern.
func (rs *RuleSet) Matches(relPath string) bool {
	if rs == nil {
		return false
	}
	for _, r := range rs.rules {
		if r.re.MatchString(relPath) {
			return true
		}
	}
	return false
}

// MatchesDir reports whether a directory path is covered so completely
// by some pattern that the whole subtree can be pruned. That is the
// case when the pattern matches the directory itself, or when the
// pattern is the directory's contents ("dir/" or "dir/*").
func (rs *RuleSet) MatchesDir(relPath string) bool {
	if rs == nil {
		return false
	}
	for _, r := range rs.rules {
		if r.re.MatchString(relPath) {
			return true
		}
		if r.dirRe != nil && r.dirRe.MatchString(relPath) {
			return true
		}
	}
	return false
}

func compileRule(pattern string, caseSensitive bool) (rule, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return rule{}, &PatternError{Pattern: pattern, Err: errors.New("blank pattern")}
	}
	if strings.Contains(trimmed, "***") {
		return rule{}, &PatternError{Pattern: pattern, Err: errors.New("more than two consecutive stars")}
	}

	re, err := compileGlob(trimmed, caseSensitive)
	if err != nil {
		return rule{}, &PatternError{Pattern: pattern, Err: err}
	}

	r := rule{line: trimmed, re: re}

	// Contents patterns also stand for the directory they name, so the
	// walker can prune instead of visiting every child.
	if prefix, ok := strings.CutSuffix(trimmed, "/*"); ok && prefix != "" {
		dirRe, err := compileGlob(prefix, caseSensitive)
		if err != nil {
			return rule{}, &PatternError{Pattern: pattern, Err: err}
		}
		r.dirRe = dirRe
	}
	return r, nil
}

// compileGlob converts a glob pattern into an anchored regular
// expression over slash-separated relative paths.
func compileGlob(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := escapeSpecialChars(pattern)
	expr = handleDoubleStarPatterns(expr)
	expr = wildcardToRegex(expr)
	expr = anchorPattern(expr, pattern)
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("glob does not compile: %w", err)
	}
	return re, nil
}

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	var specialChars = `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// Placeholders keep '**' expansions out of reach of the single-star
// pass; they are substituted after all wildcards are rewritten.
const (
	doubleStarMiddleToken   = "\x00"
	doubleStarTrailingToken = "\x01"
	doubleStarLeadingToken  = "\x02"
)

// handleDoubleStarPatterns replaces '**' patterns with placeholder tokens.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, doubleStarMiddleToken)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, doubleStarTrailingToken)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, doubleStarLeadingToken)
	return pattern
}

// wildcardToRegex converts wildcard patterns '*' and '?' to regex
// equivalents, then expands the '**' placeholder tokens.
func wildcardToRegex(pattern string) string {
	pattern = singleStarReplacementPattern.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	pattern = strings.ReplaceAll(pattern, doubleStarMiddleToken, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, doubleStarTrailingToken, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, doubleStarLeadingToken, `(.*/)?`)
	return pattern
}

// anchorPattern anchors the regex pattern to match the entire path.
// A pattern matching a directory also matches everything beneath it.
func anchorPattern(pattern string, originalPattern string) string {
	if directoryEndPattern.MatchString(originalPattern) {
		pattern = strings.TrimSuffix(pattern, "/") + "(/.*)?$"
	} else {
		pattern = pattern + "(|/.*)?$"
	}

	if rootRelativePattern.MatchString(originalPattern) {
		return "^" + strings.TrimPrefix(pattern, `/`)
	}
	return "^(|.*/)" + pattern
}

// normalizePath rewrites OS-specific separators to forward slashes so
// pattern matching behaves identically on every platform.
func normalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
