// Package news holds the pipeline data model and the per-category
// merge/dedupe/rank logic.
package news

import (
	"strings"
	"unicode"
)

// Item is one normalized feed entry. It lives only between fetching a
// source and folding the category output into records.
type Item struct {
	Title       string
	Description string
	Link        string
	Image       string
	Date        string // YYYY-MM-DD
	Source      string
}

// Record is the persisted podcast entry. Audio stays empty until the voice
// stage produces a file for this id.
type Record struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Image       string `json:"image"`
	Audio       string `json:"audio"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Link        string `json:"link"`
}

// SpeechText is the fallback text spoken for a record when no text blob
// exists on disk.
func (r Record) SpeechText() string {
	return r.Title + ". " + r.Description
}

// normalizeTitle lowers the title, trims it and drops everything that is not
// a letter, digit or space. "Patch 1.2!" and "patch 1.2" collapse to the
// same key.
func normalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Dedupe collapses items whose normalized titles collide, keeping the first
// occurrence. Order of survivors is preserved.
func Dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	unique := make([]Item, 0, len(items))

	for _, item := range items {
		key := normalizeTitle(item.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}
