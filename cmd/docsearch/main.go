package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/build"
	"github.com/fwojciec/docsearch/etree"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/goldmark"
	"github.com/fwojciec/docsearch/goquery"
	dshttp "github.com/fwojciec/docsearch/http"
	"github.com/fwojciec/docsearch/search"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/toml"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides the config file when set. Used by tests.
	Config *docsearch.Config
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Build, search and serve markdown documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire command-specific dependencies based on command
	switch command, _, _ := strings.Cut(kongCtx.Command(), " "); command {
	case "build":
		cfg, err := m.config(cli.Config, stderr)
		if err != nil {
			return err
		}
		deps.Config = cfg
		m.wireBuild(deps)

	case "search":
		if cli.Search.Index != "" {
			if err := m.wireIndex(deps, cli.Search.Index, cli.Search.Timeout); err != nil {
				return err
			}
			break
		}
		cfg, err := m.config(cli.Config, stderr)
		if err != nil {
			return err
		}
		deps.Config = cfg
		deps.IndexURL = cfg.IndexURL()
		deps.Loader = search.NewLoader(dsslog.NewLoggingIndexFetcher(fs.NewIndexFetcher(cfg.OutputDir), deps.Logger))
		deps.Navigation, err = readNavigation(filepath.Join(cfg.OutputDir, cfg.Section, docsearch.NavigationDatabaseFile))
		if err != nil {
			return err
		}

	case "serve":
		cfg, err := m.config(cli.Config, stderr)
		if err != nil {
			return err
		}
		deps.Config = cfg
		loader := search.NewLoader(dsslog.NewLoggingIndexFetcher(fs.NewIndexFetcher(cfg.OutputDir), deps.Logger))
		deps.Server = dshttp.NewServer(cfg.OutputDir, loader, cfg.MaxResults, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// config returns the override config or loads the config file.
func (m *Main) config(file string, stderr io.Writer) (*docsearch.Config, error) {
	if m.Config != nil {
		return m.Config, nil
	}
	cfg, err := toml.LoadConfig(file)
	if docsearch.ErrorCode(err) == docsearch.ENOTFOUND {
		fmt.Fprintln(stderr, "Hint: Set DOCSEARCH_CONFIG or pass --config to use a different config file")
	}
	return cfg, err
}

func (m *Main) wireBuild(deps *Dependencies) {
	cfg := deps.Config
	compiler := goldmark.NewCompiler(
		goldmark.WithLanguages(cfg.Languages...),
		goldmark.WithStyle(cfg.CodeStyle),
	)
	store := fs.NewStore(cfg.OutputDir)
	extractor := goquery.NewExtractor()

	deps.Output = store
	deps.Styles = compiler.WriteCSS
	deps.Builder = &build.Builder{
		Config:   *cfg,
		Sources:  fs.NewSourceReader(cfg.SourceDir, cfg.Include, cfg.Exclude),
		Output:   store,
		Compiler: dsslog.NewLoggingCompiler(compiler, deps.Logger),
		Text:     extractor,
		Links:    extractor,
		Sitemap:  etree.NewSitemapEncoder(),
	}
}

// wireIndex wires search against a database given as a file path or an
// http(s) URL. A zero timeout leaves remote fetches without a deadline.
func (m *Main) wireIndex(deps *Dependencies, index string, timeout time.Duration) error {
	var fetcher docsearch.IndexFetcher
	if strings.HasPrefix(index, "http://") || strings.HasPrefix(index, "https://") {
		u, err := url.Parse(index)
		if err != nil {
			return docsearch.Errorf(docsearch.EINVALID, "invalid index URL %q", index)
		}
		base := u.Scheme + "://" + u.Host
		opts := []dshttp.Option{dshttp.WithBaseURL(base)}
		if timeout > 0 {
			opts = append(opts, dshttp.WithTimeout(timeout))
		}
		fetcher = dshttp.NewIndexFetcher(opts...)
		deps.IndexURL = u.RequestURI()
		deps.BaseURL = base
	} else {
		dir, file := filepath.Split(index)
		if dir == "" {
			dir = "."
		}
		fetcher = fs.NewIndexFetcher(dir)
		deps.IndexURL = "/" + file

		nav, err := readNavigation(filepath.Join(dir, docsearch.NavigationDatabaseFile))
		if err != nil {
			return err
		}
		deps.Navigation = nav
	}
	deps.Loader = search.NewLoader(dsslog.NewLoggingIndexFetcher(fetcher, deps.Logger))
	return nil
}

// readNavigation reads a navigation database. A missing file means no
// navigation.
func readNavigation(name string) ([]docsearch.NavRecord, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var nav []docsearch.NavRecord
	if err := json.Unmarshal(data, &nav); err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "invalid %s: %v", path.Base(filepath.ToSlash(name)), err)
	}
	return nav, nil
}
