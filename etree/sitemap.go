// Package etree writes sitemaps with github.com/beevik/etree.
package etree

import (
	"net/url"
	"path"

	"github.com/beevik/etree"
	"github.com/fwojciec/docsearch"
)

// SitemapNamespace is the sitemaps.org XML namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Ensure SitemapEncoder implements docsearch.SitemapEncoder.
var _ docsearch.SitemapEncoder = (*SitemapEncoder)(nil)

// SitemapEncoder produces a <urlset> document.
type SitemapEncoder struct{}

// NewSitemapEncoder creates a new SitemapEncoder.
func NewSitemapEncoder() *SitemapEncoder {
	return &SitemapEncoder{}
}

// EncodeSitemap lists each href below the path of baseURL, in order.
// Duplicate hrefs are listed once.
func (e *SitemapEncoder) EncodeSitemap(baseURL string, hrefs []string) ([]byte, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "invalid base URL: %v", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "base URL must be absolute: %q", baseURL)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)

	seen := make(map[string]bool, len(hrefs))
	for _, href := range hrefs {
		if seen[href] {
			continue
		}
		seen[href] = true

		loc := *base
		loc.Path = path.Join("/", base.Path, href)
		loc.RawQuery, loc.Fragment = "", ""
		urlset.CreateElement("url").CreateElement("loc").SetText(loc.String())
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
