package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var (
	_ docsearch.IndexFetcher = (*IndexFetcher)(nil)
	_ docsearch.IndexLoader  = (*IndexLoader)(nil)
)

// IndexFetcher is a mock implementation of docsearch.IndexFetcher.
type IndexFetcher struct {
	FetchIndexFn func(ctx context.Context, url string) (docsearch.Index, error)
}

func (f *IndexFetcher) FetchIndex(ctx context.Context, url string) (docsearch.Index, error) {
	return f.FetchIndexFn(ctx, url)
}

// IndexLoader is a mock implementation of docsearch.IndexLoader.
type IndexLoader struct {
	LoadFn func(ctx context.Context, url string) (docsearch.Index, error)
}

func (l *IndexLoader) Load(ctx context.Context, url string) (docsearch.Index, error) {
	return l.LoadFn(ctx, url)
}
