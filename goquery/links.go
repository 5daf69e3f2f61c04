package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// Links returns the internal link targets of html as site-relative paths.
func (e *Extractor) Links(html, href string) ([]string, error) {
	base := &url.URL{Path: href}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		target, exists := sel.Attr("href")
		if !exists || target == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(target) {
			return
		}

		resolved := resolvePath(base, target)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})
	return links, nil
}

// resolvePath resolves href against the page at base and returns its path.
// Returns empty string for unparsable, external and self-referential links.
func resolvePath(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if ref.Scheme != "" || ref.Host != "" {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Path == base.Path {
		return ""
	}
	return resolved.Path
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
