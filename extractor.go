package docsearch

// TextExtractor turns an HTML fragment into plain text.
type TextExtractor interface {
	// Text returns the text content of html with markup removed and
	// whitespace collapsed.
	Text(html string) (string, error)
}

// LinkExtractor lists the site-internal links of a compiled page.
type LinkExtractor interface {
	// Links returns the distinct internal link targets in html, resolved
	// against the page at href, without fragments, in document order.
	// Links to the page itself, external URLs and non-HTTP schemes are
	// skipped.
	Links(html, href string) ([]string, error)
}
