package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docsearch"
	main "github.com/fwojciec/docsearch/cmd/docsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProject writes a small documentation tree and returns a config for it.
func testProject(t *testing.T) *docsearch.Config {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"src/docs/intro.md":         "# Introduction\n\nSee [install](guide/install.md) and [missing](guide/missing.md).\n\n<div>banner</div>\n",
		"src/docs/guide/install.md": "# Install\n\nRun the installer.\n\n```shell\nmake install\n```\n",
	}
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	cfg := docsearch.DefaultConfig()
	cfg.Section = "docs"
	cfg.Prefix = "docs"
	cfg.SourceDir = filepath.Join(root, "src")
	cfg.OutputDir = filepath.Join(root, "dist")
	return &cfg
}

func run(t *testing.T, cfg *docsearch.Config, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	m := main.NewMain()
	m.Config = cfg
	err = m.Run(context.Background(), args, strings.NewReader(""), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestBuildCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds the section", func(t *testing.T) {
		t.Parallel()

		cfg := testProject(t)

		stdout, stderr, err := run(t, cfg, "build")

		require.NoError(t, err)
		assert.Contains(t, stdout, `Building "docs"`)
		assert.Contains(t, stdout, "Found 2 pages")
		assert.Contains(t, stdout, "Built 2 pages")
		assert.Contains(t, stderr, `level=WARN msg="broken link" path=docs/intro.md target=/docs/guide/missing`)
		assert.Contains(t, stderr, `level=WARN msg="removed raw HTML" path=docs/intro.md`)

		for _, name := range []string{
			"docs/db.json",
			"docs/nav.json",
			"docs/style.css",
			"docs/intro.html",
			"docs/guide/install.html",
			"docs/guide/install.nav.html",
			"docs/guide/install.toc.html",
			"docs/guide/install.name.txt",
		} {
			assert.FileExists(t, filepath.Join(cfg.OutputDir, filepath.FromSlash(name)))
		}
		assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "docs", docsearch.SitemapFile))

		page, err := os.ReadFile(filepath.Join(cfg.OutputDir, "docs", "guide", "install.html"))
		require.NoError(t, err)
		assert.Contains(t, string(page), `<h1 id="install">Install</h1>`)
	})

	t.Run("reports unchanged navigation on rebuild", func(t *testing.T) {
		t.Parallel()

		cfg := testProject(t)

		first, _, err := run(t, cfg, "build")
		require.NoError(t, err)
		second, _, err := run(t, cfg, "build", "--progress")
		require.NoError(t, err)

		assert.NotContains(t, first, "Navigation unchanged")
		assert.Contains(t, second, "Navigation unchanged")
		assert.Contains(t, second, "[2/2]")
	})

	t.Run("writes a sitemap with a base url", func(t *testing.T) {
		t.Parallel()

		cfg := testProject(t)
		cfg.BaseURL = "https://example.com"

		stdout, _, err := run(t, cfg, "build")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Wrote sitemap.xml")
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "docs", docsearch.SitemapFile))
		require.NoError(t, err)
		assert.Contains(t, string(data), "https://example.com/docs/guide/install")
	})

	t.Run("reports build errors", func(t *testing.T) {
		t.Parallel()

		cfg := testProject(t)
		cfg.Include = []string{"[invalid"}

		_, stderr, err := run(t, cfg, "build")

		require.Error(t, err)
		assert.Contains(t, stderr, "error building:")
	})
}
