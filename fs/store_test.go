package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewStore(dir)

		err := s.WriteFile(context.Background(), "docs/guide/build.html", []byte("<h1>Build</h1>"))

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "docs", "guide", "build.html"))
		require.NoError(t, err)
		assert.Equal(t, "<h1>Build</h1>", string(data))
	})

	t.Run("replaces existing files without leaving temporaries", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewStore(dir)

		require.NoError(t, s.WriteFile(context.Background(), "docs/db.json", []byte("[1]")))
		require.NoError(t, s.WriteFile(context.Background(), "docs/db.json", []byte("[]")))

		entries, err := os.ReadDir(filepath.Join(dir, "docs"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "db.json", entries[0].Name())

		data, err := s.ReadFile(context.Background(), "docs/db.json")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("rejects names escaping the root", func(t *testing.T) {
		t.Parallel()

		s := fs.NewStore(t.TempDir())

		err := s.WriteFile(context.Background(), "../escape.txt", []byte("x"))

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})
}

func TestStore_WriteIfChanged(t *testing.T) {
	t.Parallel()

	t.Run("writes a new file", func(t *testing.T) {
		t.Parallel()

		s := fs.NewStore(t.TempDir())

		written, err := s.WriteIfChanged(context.Background(), "docs/nav.json", []byte("[]"))

		require.NoError(t, err)
		assert.True(t, written)
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewStore(dir)
		require.NoError(t, s.WriteFile(context.Background(), "docs/nav.json", []byte(`[{"path":"a.md"}]`)))
		before, err := os.Stat(filepath.Join(dir, "docs", "nav.json"))
		require.NoError(t, err)

		written, err := s.WriteIfChanged(context.Background(), "docs/nav.json", []byte(`[{"path":"a.md"}]`))

		require.NoError(t, err)
		assert.False(t, written)
		after, err := os.Stat(filepath.Join(dir, "docs", "nav.json"))
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("rewrites changed content", func(t *testing.T) {
		t.Parallel()

		s := fs.NewStore(t.TempDir())
		require.NoError(t, s.WriteFile(context.Background(), "docs/nav.json", []byte(`[{"path":"a.md"}]`)))

		written, err := s.WriteIfChanged(context.Background(), "docs/nav.json", []byte(`[{"path":"b.md"}]`))

		require.NoError(t, err)
		assert.True(t, written)
		data, err := s.ReadFile(context.Background(), "docs/nav.json")
		require.NoError(t, err)
		assert.Equal(t, `[{"path":"b.md"}]`, string(data))
	})
}

func TestStore_ReadFile(t *testing.T) {
	t.Parallel()

	s := fs.NewStore(t.TempDir())

	_, err := s.ReadFile(context.Background(), "docs/missing.json")

	assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
}
