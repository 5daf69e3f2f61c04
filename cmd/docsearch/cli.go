package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/build"
)

// Server serves built sections until its context is done.
type Server interface {
	ListenAndServe(ctx context.Context, addr string) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *docsearch.Config

	// Build.
	Builder *build.Builder
	Output  docsearch.OutputStore
	Styles  func(w io.Writer) error

	// Search.
	Loader     docsearch.IndexLoader
	IndexURL   string
	BaseURL    string
	Navigation []docsearch.NavRecord

	// Opener is called with the href of the opened match, after its URL is
	// printed.
	Opener func(href string)

	// Serve.
	Server Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" default:"docsearch.toml" env:"DOCSEARCH_CONFIG" help:"Config file"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Build  BuildCmd  `cmd:"" help:"Compile markdown sources into a documentation section"`
	Search SearchCmd `cmd:"" help:"Search a built documentation section"`
	Serve  ServeCmd  `cmd:"" help:"Serve built sections with a search API"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Concurrency int  `short:"j" help:"Concurrent compile limit (default from config)"`
	Progress    bool `short:"p" help:"Print each compiled page"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query       string        `arg:"" optional:"" help:"Search query"`
	Index       string        `short:"i" help:"Search database file or URL (default: the configured section)"`
	Limit       int           `short:"n" help:"Maximum results (default from config)"`
	Open        bool          `short:"o" help:"Print the URL of the best match"`
	Interactive bool          `short:"I" help:"Read queries from standard input, one per line (empty line clears, :open prints the best match URL, :quit exits)"`
	Timeout     time.Duration `help:"Timeout for fetching a database URL (default: none)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" default:"localhost:8080" help:"Listen address"`
}
