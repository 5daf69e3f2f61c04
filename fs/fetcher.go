package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Ensure IndexFetcher implements docsearch.IndexFetcher at compile time.
var _ docsearch.IndexFetcher = (*IndexFetcher)(nil)

// IndexFetcher reads search databases from an output directory. The URL is
// the site-relative path of the database, e.g. "/docs/db.json".
type IndexFetcher struct {
	root string
}

// NewIndexFetcher creates an IndexFetcher rooted at dir.
func NewIndexFetcher(dir string) *IndexFetcher {
	return &IndexFetcher{root: dir}
}

// FetchIndex returns ENOTFOUND when the file is missing and a
// *docsearch.ParseError when it is not a valid database.
func (f *IndexFetcher) FetchIndex(ctx context.Context, url string) (docsearch.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := resolve(f.root, strings.TrimPrefix(url, "/"))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "search database %q not found", url)
	} else if err != nil {
		return nil, err
	}

	idx, err := docsearch.DecodeIndex(data)
	if err != nil {
		return nil, &docsearch.ParseError{URL: url, Err: err}
	}
	return idx, nil
}
