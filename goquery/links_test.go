package goquery_test

import (
	"testing"

	"github.com/fwojciec/docsearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_LinksTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "resolves relative links against the page",
			html: `<a href="guide/build">b</a> <a href="../other/page">o</a>`,
			want: []string{"/docs/guide/build", "/other/page"},
		},
		{
			name: "keeps absolute paths",
			html: `<a href="/docs/intro">i</a>`,
			want: []string{"/docs/intro"},
		},
		{
			name: "strips fragments and dedupes",
			html: `<a href="guide/build#options">a</a> <a href="guide/build">b</a>`,
			want: []string{"/docs/guide/build"},
		},
		{
			name: "skips external, self and non-HTTP links",
			html: `<a href="https://example.com/x">e</a> <a href="#top">t</a> <a href="mailto:a@b.c">m</a> <a href="javascript:void(0)">j</a>`,
			want: nil,
		},
		{
			name: "no links",
			html: `<p>text</p>`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := goquery.NewExtractor().Links(tt.html, "/docs/page")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
