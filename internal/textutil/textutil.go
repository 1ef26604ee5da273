// Package textutil cleans up text pulled out of RSS entries before it is
// persisted or spoken aloud.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

// DefaultDescriptionLimit caps record descriptions, in runes.
const DefaultDescriptionLimit = 500

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanMarkup strips markup tags, decodes HTML entities and collapses
// whitespace runs to a single space. Empty input stays empty.
func CleanMarkup(s string) string {
	if s == "" {
		return ""
	}
	clean := tagRe.ReplaceAllString(s, "")
	clean = html.UnescapeString(clean)
	clean = whitespaceRe.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}

// Truncate cuts text to at most max runes without splitting a word, and
// marks the cut with an ellipsis. When the cut contains no space at all the
// raw cut is kept as-is rather than producing an unbounded string.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
