package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCompiler_Compile(t *testing.T) {
	t.Parallel()

	t.Run("logs page details at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Compiler{
			CompileFn: func(source []byte) (*docsearch.CompiledPage, error) {
				return &docsearch.CompiledPage{
					HTML:     "<h1>Build</h1>",
					Title:    "Build",
					Sections: []docsearch.Section{{Level: 1, Title: "Build", Anchor: "build"}},
					Removed:  []string{"<div>"},
				}, nil
			},
		}

		c := dsslog.NewLoggingCompiler(inner, logger)
		page, err := c.Compile([]byte("# Build\n"))

		require.NoError(t, err)
		assert.Equal(t, "Build", page.Title)
		output := buf.String()
		assert.Contains(t, output, "compile page")
		assert.Contains(t, output, "bytes=8")
		assert.Contains(t, output, "title=Build")
		assert.Contains(t, output, "sections=1")
		assert.Contains(t, output, "removed=1")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Compiler{
			CompileFn: func(source []byte) (*docsearch.CompiledPage, error) {
				return nil, errors.New("boom")
			},
		}

		c := dsslog.NewLoggingCompiler(inner, logger)
		_, err := c.Compile([]byte("# Build\n"))

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingCompiler_RenderInline(t *testing.T) {
	t.Parallel()

	inner := &mock.Compiler{
		RenderInlineFn: func(markdown string) (string, error) {
			return "<em>" + markdown + "</em>", nil
		},
	}

	c := dsslog.NewLoggingCompiler(inner, slog.New(slog.DiscardHandler))
	out, err := c.RenderInline("x")

	require.NoError(t, err)
	assert.Equal(t, "<em>x</em>", out)
}
