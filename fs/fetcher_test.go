package fs_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexFetcher_FetchIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"docs/db.json":   `[{"path":"intro.md","href":"/docs/intro","title":"Intro","content":"Start here."}]`,
		"broken/db.json": `{"path":"intro.md"}`,
	})
	f := fs.NewIndexFetcher(dir)

	t.Run("reads the database at a site-relative url", func(t *testing.T) {
		t.Parallel()

		idx, err := f.FetchIndex(context.Background(), "/docs/db.json")

		require.NoError(t, err)
		require.Len(t, idx, 1)
		assert.Equal(t, "/docs/intro", idx[0].Href)
	})

	t.Run("missing database is not found", func(t *testing.T) {
		t.Parallel()

		_, err := f.FetchIndex(context.Background(), "/api/db.json")

		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})

	t.Run("malformed database is a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := f.FetchIndex(context.Background(), "/broken/db.json")

		var pe *docsearch.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "/broken/db.json", pe.URL)
	})

	t.Run("urls escaping the root are invalid", func(t *testing.T) {
		t.Parallel()

		_, err := f.FetchIndex(context.Background(), "/../db.json")

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})
}
