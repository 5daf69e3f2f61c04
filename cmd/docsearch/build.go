package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/build"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	b := deps.Builder
	if c.Concurrency > 0 {
		b.Config.Concurrency = c.Concurrency
	}
	cfg := b.Config

	fmt.Fprintf(deps.Stdout, "Building %q from %s\n", cfg.Section, cfg.SourceDir)

	progress := func(event build.ProgressEvent) {
		switch event.Type {
		case build.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d pages\n", event.Total)
		case build.ProgressCompiled:
			if c.Progress {
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, build.TruncatePath(event.Path, 60))
			}
		case build.ProgressFinished:
			// Summary printed after build completes
		}
	}

	result, err := b.Build(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error building: %v\n", err)
		return err
	}

	if deps.Styles != nil {
		var buf bytes.Buffer
		if err := deps.Styles(&buf); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing styles: %v\n", err)
			return err
		}
		if _, err := deps.Output.WriteIfChanged(deps.Ctx, cfg.Section+"/"+docsearch.StyleFile, buf.Bytes()); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing styles: %v\n", err)
			return err
		}
	}

	for _, r := range result.Removed {
		deps.Logger.Warn("removed raw HTML", "path", r.Path, "html", oneLine(r.HTML))
	}
	for _, l := range result.BrokenLinks {
		deps.Logger.Warn("broken link", "path", l.Path, "target", l.Target)
	}

	fmt.Fprintf(deps.Stdout, "  Built %d pages (%s)\n", result.Pages, build.FormatBytes(result.Bytes))
	if result.Sitemap {
		fmt.Fprintf(deps.Stdout, "  Wrote %s\n", docsearch.SitemapFile)
	}
	if !result.NavChanged {
		fmt.Fprintln(deps.Stdout, "  Navigation unchanged")
	}
	return nil
}

// oneLine collapses whitespace so a snippet fits on one line.
func oneLine(s string) string {
	return build.TruncatePath(strings.Join(strings.Fields(s), " "), 80)
}
