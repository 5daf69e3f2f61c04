// Package slog decorates docsearch services with log/slog logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingIndexFetcher implements docsearch.IndexFetcher.
var _ docsearch.IndexFetcher = (*LoggingIndexFetcher)(nil)

// LoggingIndexFetcher wraps an IndexFetcher with logging.
type LoggingIndexFetcher struct {
	next   docsearch.IndexFetcher
	logger *slog.Logger
}

// NewLoggingIndexFetcher creates a new LoggingIndexFetcher.
func NewLoggingIndexFetcher(next docsearch.IndexFetcher, logger *slog.Logger) *LoggingIndexFetcher {
	return &LoggingIndexFetcher{next: next, logger: logger}
}

// FetchIndex delegates to the wrapped fetcher and logs the operation.
func (f *LoggingIndexFetcher) FetchIndex(ctx context.Context, url string) (idx docsearch.Index, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch index",
			"url", url,
			"records", len(idx),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchIndex(ctx, url)
}
