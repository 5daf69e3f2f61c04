package docsearch

import "context"

// UntitledPage is the page name used when a page has no heading.
const UntitledPage = "untitled"

// CompiledPage is the rendered form of one markdown page.
type CompiledPage struct {
	HTML     string
	Title    string // first heading text, or UntitledPage
	Sections []Section

	// Removed lists raw HTML dropped from the source.
	Removed []string
}

// Compiler renders markdown pages.
type Compiler interface {
	// Compile renders a whole page: heading anchors, rewritten links,
	// highlighted code blocks and no raw HTML.
	Compile(source []byte) (*CompiledPage, error)

	// RenderInline renders a single line of inline markdown to HTML.
	RenderInline(markdown string) (string, error)
}

// SourceReader lists and reads markdown sources of one section.
// Paths are slash-separated and relative to the source root.
type SourceReader interface {
	// List returns the source paths in build order.
	List(ctx context.Context) ([]string, error)

	// Read returns the contents of a source.
	// Returns ENOTFOUND if the source does not exist.
	Read(ctx context.Context, path string) ([]byte, error)
}

// OutputStore persists build artifacts. Names are slash-separated and
// relative to the output root.
type OutputStore interface {
	// WriteFile replaces name with data.
	WriteFile(ctx context.Context, name string, data []byte) error

	// WriteIfChanged writes data only when it differs from the current
	// contents of name, and reports whether it wrote.
	WriteIfChanged(ctx context.Context, name string, data []byte) (bool, error)

	// ReadFile returns the contents of name.
	// Returns ENOTFOUND if it does not exist.
	ReadFile(ctx context.Context, name string) ([]byte, error)
}
