// Package goquery inspects compiled HTML with github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// Ensure Extractor implements the docsearch extraction interfaces.
var (
	_ docsearch.TextExtractor = (*Extractor)(nil)
	_ docsearch.LinkExtractor = (*Extractor)(nil)
)

// Extractor reads text and links out of HTML fragments.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Text returns the text content of html. Runs of whitespace become a single
// space and the result is trimmed.
func (e *Extractor) Text(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
