package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	main "github.com/fwojciec/docsearch/cmd/docsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"build", "search", "serve"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_SearchHelp(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"search", "--help"})

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Print the URL of the best match")
	assert.Contains(t, helpOutput, "--timeout")
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, strings.NewReader(""), stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "Flags:")
		assert.Contains(t, stdout.String(), "search")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, strings.NewReader(""), stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("unknown command is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"publish"}, strings.NewReader(""), stdout, stderr)

		require.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		config := filepath.Join(t.TempDir(), "docsearch.toml")

		err := main.NewMain().Run(context.Background(), []string{"--config", config, "build"}, strings.NewReader(""), stdout, stderr)

		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "DOCSEARCH_CONFIG")
	})
}
