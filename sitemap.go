package docsearch

// SitemapEncoder produces a sitemaps.org XML document.
type SitemapEncoder interface {
	// EncodeSitemap lists every href, resolved against baseURL.
	EncodeSitemap(baseURL string, hrefs []string) ([]byte, error)
}
