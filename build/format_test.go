package build_test

import (
	"testing"

	"github.com/fwojciec/docsearch/build"
	"github.com/stretchr/testify/assert"
)

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	t.Run("returns path unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "docs/a.md", build.TruncatePath("docs/a.md", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		result := build.TruncatePath("docs/guide/advanced/configuration.md", 20)
		assert.Equal(t, ".../configuration.md", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, build.TruncatePath("docs/a.md", 0))
		assert.Empty(t, build.TruncatePath("docs/a.md", -1))
	})

	t.Run("returns prefix of path when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "doc", build.TruncatePath("docs/a.md", 3))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, build.FormatBytes(tt.bytes))
		})
	}
}
