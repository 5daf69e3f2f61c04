// Package build compiles a documentation section: pages, navigation,
// search database and sitemap.
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/fwojciec/docsearch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel page compilation when none is configured.
const DefaultConcurrency = 8

// Builder builds one section as described by Config.
type Builder struct {
	Config   docsearch.Config
	Sources  docsearch.SourceReader
	Output   docsearch.OutputStore
	Compiler docsearch.Compiler
	Text     docsearch.TextExtractor

	// Links enables the broken link check when set.
	Links docsearch.LinkExtractor

	// Sitemap is required when Config.BaseURL is set.
	Sitemap docsearch.SitemapEncoder
}

// Result holds the outcome of a build.
type Result struct {
	Pages int
	Bytes int

	// Removed lists raw HTML dropped from the sources.
	Removed []Removal

	// BrokenLinks lists links to pages of this section that do not exist.
	BrokenLinks []BrokenLink

	// NavChanged reports whether the navigation database was rewritten.
	NavChanged bool

	// Sitemap reports whether sitemap.xml was written.
	Sitemap bool
}

// Removal is raw HTML dropped from a source.
type Removal struct {
	Path string
	HTML string
}

// BrokenLink is a link from a page to a missing page.
type BrokenLink struct {
	Path   string
	Target string
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompiled
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// compiled is the outcome of compiling one source.
type compiled struct {
	record *docsearch.Record
	page   *docsearch.CompiledPage
}

// Build compiles every source and writes the section's output. The progress
// callback, if provided, is never called concurrently.
func (b *Builder) Build(ctx context.Context, progress ProgressFunc) (*Result, error) {
	cfg := b.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL != "" && b.Sitemap == nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "base URL set without a sitemap encoder")
	}

	paths, err := b.Sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	names, err := b.categories(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		completed int
	)
	report := func(event ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		if event.Type == ProgressCompiled {
			completed++
			event.Completed = completed
		}
		if progress != nil {
			progress(event)
		}
	}

	total := len(paths)
	report(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Each worker writes only its own slot, so results keep source order.
	results := make([]compiled, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range paths {
		g.Go(func() error {
			c, err := b.compile(gctx, p)
			if err != nil {
				return fmt.Errorf("compile %s: %w", p, err)
			}
			results[i] = c
			report(ProgressEvent{Type: ProgressCompiled, Total: total, Path: p})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := make(docsearch.Index, 0, total)
	for _, c := range results {
		idx = append(idx, c.record)
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	nav := idx.Navigation()
	categories := docsearch.BuildNavigation(nav, cfg.Prefix, names)

	result := &Result{Pages: total}
	for _, c := range results {
		n, err := b.writePage(ctx, c, categories)
		if err != nil {
			return nil, err
		}
		result.Bytes += n
		for _, h := range c.page.Removed {
			result.Removed = append(result.Removed, Removal{Path: c.record.Path, HTML: h})
		}
	}

	if b.Links != nil {
		broken, err := b.checkLinks(results)
		if err != nil {
			return nil, err
		}
		result.BrokenLinks = broken
	}

	if err := b.writeJSON(ctx, docsearch.SearchDatabaseFile, idx); err != nil {
		return nil, err
	}

	navData, err := json.Marshal(nav)
	if err != nil {
		return nil, err
	}
	result.NavChanged, err = b.Output.WriteIfChanged(ctx, b.name(docsearch.NavigationDatabaseFile), navData)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", docsearch.NavigationDatabaseFile, err)
	}

	if cfg.BaseURL != "" {
		hrefs := make([]string, len(idx))
		for i, r := range idx {
			hrefs[i] = r.Href
		}
		data, err := b.Sitemap.EncodeSitemap(cfg.BaseURL, hrefs)
		if err != nil {
			return nil, fmt.Errorf("encode sitemap: %w", err)
		}
		if err := b.Output.WriteFile(ctx, b.name(docsearch.SitemapFile), data); err != nil {
			return nil, fmt.Errorf("write %s: %w", docsearch.SitemapFile, err)
		}
		result.Sitemap = true
	}

	report(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

// compile reads and compiles one source and derives its record.
func (b *Builder) compile(ctx context.Context, p string) (compiled, error) {
	data, err := b.Sources.Read(ctx, p)
	if err != nil {
		return compiled{}, err
	}

	page, err := b.Compiler.Compile(data)
	if err != nil {
		return compiled{}, err
	}

	content := strings.TrimSpace(strings.ToValidUTF8(string(data), "\uFFFD"))
	href := docsearch.RecordHref(b.Config.Section, b.Config.Prefix, p)
	title, err := docsearch.RecordTitle(content, href, b.inlineText)
	if err != nil {
		return compiled{}, err
	}

	return compiled{
		record: &docsearch.Record{Path: p, Href: href, Title: title, Content: content},
		page:   page,
	}, nil
}

// inlineText renders one line of markdown to plain text.
func (b *Builder) inlineText(markdown string) (string, error) {
	html, err := b.Compiler.RenderInline(markdown)
	if err != nil {
		return "", err
	}
	return b.Text.Text(html)
}

// writePage writes the page fragments and returns the size of its HTML.
func (b *Builder) writePage(ctx context.Context, c compiled, categories []*docsearch.Category) (int, error) {
	navHTML, err := docsearch.RenderNavigation(categories, c.record.Path)
	if err != nil {
		return 0, err
	}
	tocHTML, err := docsearch.RenderTOC(c.page.Sections)
	if err != nil {
		return 0, err
	}

	base := strings.TrimPrefix(c.record.Href, "/")
	files := []struct {
		name string
		data string
	}{
		{base + ".html", c.page.HTML},
		{base + ".nav.html", navHTML},
		{base + ".toc.html", tocHTML},
		{base + ".name.txt", c.page.Title},
	}
	for _, f := range files {
		if err := b.Output.WriteFile(ctx, f.name, []byte(f.data)); err != nil {
			return 0, fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return len(c.page.HTML), nil
}

// checkLinks finds links to extensionless paths inside the section that no
// page was built for.
func (b *Builder) checkLinks(results []compiled) ([]BrokenLink, error) {
	hrefs := make(map[string]bool, len(results))
	for _, c := range results {
		hrefs[c.record.Href] = true
	}

	sectionRoot := "/" + b.Config.Section + "/"
	var broken []BrokenLink
	for _, c := range results {
		links, err := b.Links.Links(c.page.HTML, c.record.Href)
		if err != nil {
			return nil, fmt.Errorf("links of %s: %w", c.record.Path, err)
		}
		for _, target := range links {
			if !strings.HasPrefix(target, sectionRoot) || path.Ext(target) != "" {
				continue
			}
			if !hrefs[strings.TrimSuffix(target, "/")] {
				broken = append(broken, BrokenLink{Path: c.record.Path, Target: target})
			}
		}
	}
	return broken, nil
}

// categories reads the directory display names next to the sources.
// A missing file means no custom names.
func (b *Builder) categories(ctx context.Context) (map[string]string, error) {
	p := path.Join(strings.Trim(b.Config.Prefix, "/"), docsearch.CategoriesFile)
	data, err := b.Sources.Read(ctx, p)
	if docsearch.ErrorCode(err) == docsearch.ENOTFOUND {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "invalid %s: %v", p, err)
	}
	return names, nil
}

func (b *Builder) writeJSON(ctx context.Context, file string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := b.Output.WriteFile(ctx, b.name(file), data); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

// name places a section-level file inside the section directory.
func (b *Builder) name(file string) string {
	return b.Config.Section + "/" + file
}
