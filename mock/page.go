package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var (
	_ docsearch.Compiler       = (*Compiler)(nil)
	_ docsearch.SourceReader   = (*SourceReader)(nil)
	_ docsearch.OutputStore    = (*OutputStore)(nil)
	_ docsearch.TextExtractor  = (*TextExtractor)(nil)
	_ docsearch.LinkExtractor  = (*LinkExtractor)(nil)
	_ docsearch.SitemapEncoder = (*SitemapEncoder)(nil)
)

// Compiler is a mock implementation of docsearch.Compiler.
type Compiler struct {
	CompileFn      func(source []byte) (*docsearch.CompiledPage, error)
	RenderInlineFn func(markdown string) (string, error)
}

func (c *Compiler) Compile(source []byte) (*docsearch.CompiledPage, error) {
	return c.CompileFn(source)
}

func (c *Compiler) RenderInline(markdown string) (string, error) {
	return c.RenderInlineFn(markdown)
}

// SourceReader is a mock implementation of docsearch.SourceReader.
type SourceReader struct {
	ListFn func(ctx context.Context) ([]string, error)
	ReadFn func(ctx context.Context, path string) ([]byte, error)
}

func (r *SourceReader) List(ctx context.Context) ([]string, error) {
	return r.ListFn(ctx)
}

func (r *SourceReader) Read(ctx context.Context, path string) ([]byte, error) {
	return r.ReadFn(ctx, path)
}

// OutputStore is a mock implementation of docsearch.OutputStore.
type OutputStore struct {
	WriteFileFn      func(ctx context.Context, name string, data []byte) error
	WriteIfChangedFn func(ctx context.Context, name string, data []byte) (bool, error)
	ReadFileFn       func(ctx context.Context, name string) ([]byte, error)
}

func (s *OutputStore) WriteFile(ctx context.Context, name string, data []byte) error {
	return s.WriteFileFn(ctx, name, data)
}

func (s *OutputStore) WriteIfChanged(ctx context.Context, name string, data []byte) (bool, error) {
	return s.WriteIfChangedFn(ctx, name, data)
}

func (s *OutputStore) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return s.ReadFileFn(ctx, name)
}

// TextExtractor is a mock implementation of docsearch.TextExtractor.
type TextExtractor struct {
	TextFn func(html string) (string, error)
}

func (e *TextExtractor) Text(html string) (string, error) {
	return e.TextFn(html)
}

// LinkExtractor is a mock implementation of docsearch.LinkExtractor.
type LinkExtractor struct {
	LinksFn func(html, href string) ([]string, error)
}

func (e *LinkExtractor) Links(html, href string) ([]string, error) {
	return e.LinksFn(html, href)
}

// SitemapEncoder is a mock implementation of docsearch.SitemapEncoder.
type SitemapEncoder struct {
	EncodeSitemapFn func(baseURL string, hrefs []string) ([]byte, error)
}

func (e *SitemapEncoder) EncodeSitemap(baseURL string, hrefs []string) ([]byte, error) {
	return e.EncodeSitemapFn(baseURL, hrefs)
}
