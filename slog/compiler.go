package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingCompiler implements docsearch.Compiler.
var _ docsearch.Compiler = (*LoggingCompiler)(nil)

// LoggingCompiler wraps a Compiler with debug logging.
type LoggingCompiler struct {
	next   docsearch.Compiler
	logger *slog.Logger
}

// NewLoggingCompiler creates a new LoggingCompiler.
func NewLoggingCompiler(next docsearch.Compiler, logger *slog.Logger) *LoggingCompiler {
	return &LoggingCompiler{next: next, logger: logger}
}

// Compile delegates to the wrapped compiler and logs the page.
func (c *LoggingCompiler) Compile(source []byte) (page *docsearch.CompiledPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes", len(source),
			"duration", time.Since(begin),
			"err", err,
		}
		if page != nil {
			attrs = append(attrs,
				"title", page.Title,
				"sections", len(page.Sections),
				"removed", len(page.Removed),
			)
		}
		c.logger.Debug("compile page", attrs...)
	}(time.Now())
	return c.next.Compile(source)
}

// RenderInline delegates to the wrapped compiler.
func (c *LoggingCompiler) RenderInline(markdown string) (string, error) {
	return c.next.RenderInline(markdown)
}
