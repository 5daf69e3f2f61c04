package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), toml.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("overlays file values on defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
section = "docs"
source_dir = "src"
prefix = "docs"
exclude = ["drafts/**"]
base_url = "https://example.com"
max_results = 10
`)

		cfg, err := toml.LoadConfig(path)

		require.NoError(t, err)
		dir := filepath.Dir(path)
		assert.Equal(t, "docs", cfg.Section)
		assert.Equal(t, filepath.Join(dir, "src"), cfg.SourceDir)
		assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutputDir)
		assert.Equal(t, "docs", cfg.Prefix)
		assert.Equal(t, []string{"**/*.md"}, cfg.Include)
		assert.Equal(t, []string{"drafts/**"}, cfg.Exclude)
		assert.Equal(t, []string{"c", "cpp", "shell", "xml"}, cfg.Languages)
		assert.Equal(t, "https://example.com", cfg.BaseURL)
		assert.Equal(t, 10, cfg.MaxResults)
		assert.Equal(t, 8, cfg.Concurrency)
	})

	t.Run("keeps absolute directories", func(t *testing.T) {
		t.Parallel()

		abs := t.TempDir()
		path := writeConfig(t, "section = \"docs\"\noutput_dir = \""+filepath.ToSlash(abs)+"\"\n")

		cfg, err := toml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.OutputDir))
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := toml.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))

		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})

	t.Run("unknown keys are invalid", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "section = \"docs\"\nsecton = \"typo\"\n")

		_, err := toml.LoadConfig(path)

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
		assert.Contains(t, docsearch.ErrorMessage(err), "secton")
	})

	t.Run("missing section is invalid", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "prefix = \"docs\"\n")

		_, err := toml.LoadConfig(path)

		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("malformed toml is an error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "section = \n")

		_, err := toml.LoadConfig(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})
}
