// Package docsearch provides a static documentation toolchain: an offline
// compiler turns a section's markdown files into HTML fragments, a
// navigation tree and a flat search database, and a search engine ranks
// database records against free-text queries.
//
// This package contains domain types, interfaces and the pure search
// pipeline following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.
// goldmark/, http/, lipgloss/).
package docsearch
