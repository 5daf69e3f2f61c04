// Package search runs interactive search sessions over a section's search
// database: a Loader that fetches each database once and a Controller that
// turns query and keyboard events into display updates.
package search

import (
	"context"
	"sync"

	"github.com/fwojciec/docsearch"
	"golang.org/x/sync/singleflight"
)

var _ docsearch.IndexLoader = (*Loader)(nil)

// Loader caches search databases by URL. Concurrent loads of a URL that is
// not cached yet share one fetch; a failed fetch is not cached.
type Loader struct {
	fetcher docsearch.IndexFetcher

	mu    sync.Mutex
	cache map[string]docsearch.Index
	group singleflight.Group
}

// NewLoader creates a Loader that fetches through f.
func NewLoader(f docsearch.IndexFetcher) *Loader {
	return &Loader{
		fetcher: f,
		cache:   make(map[string]docsearch.Index),
	}
}

// Load returns the database at url, fetching it on first use.
//
// The shared fetch is not canceled when one waiter's context is done; that
// waiter returns early and the others still get the result.
func (l *Loader) Load(ctx context.Context, url string) (docsearch.Index, error) {
	if idx, ok := l.cached(url); ok {
		return idx, nil
	}

	ch := l.group.DoChan(url, func() (any, error) {
		// A fetch for url may have completed between the check above and now.
		if idx, ok := l.cached(url); ok {
			return idx, nil
		}
		idx, err := l.fetcher.FetchIndex(context.WithoutCancel(ctx), url)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[url] = idx
		l.mu.Unlock()
		return idx, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(docsearch.Index), nil
	}
}

// Loaded reports whether the database at url is cached.
func (l *Loader) Loaded(url string) bool {
	_, ok := l.cached(url)
	return ok
}

// Reset drops every cached database.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.cache)
}

func (l *Loader) cached(url string) (docsearch.Index, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx, ok := l.cache[url]
	return idx, ok
}
