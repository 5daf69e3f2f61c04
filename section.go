package docsearch

import (
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a compiled page.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Anchors hands out unique URL-safe heading anchors within one page.
// Duplicates get numeric suffixes: "example", "example-1", "example-2".
type Anchors struct {
	used map[string]bool
}

// NewAnchors returns an empty anchor set.
func NewAnchors() *Anchors {
	return &Anchors{used: make(map[string]bool)}
}

// Next returns a new unique anchor for title.
func (a *Anchors) Next(title string) string {
	base := generateAnchor(title)
	if base == "" {
		base = "heading"
	}

	anchor := base
	for n := 1; a.used[anchor]; n++ {
		anchor = base + "-" + strconv.Itoa(n)
	}
	a.used[anchor] = true
	return anchor
}

// Reserve marks an explicit anchor as taken.
func (a *Anchors) Reserve(anchor string) {
	a.used[anchor] = true
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := sb.String()
	// Trim trailing hyphen
	return strings.TrimSuffix(result, "-")
}
