// Package fs provides file-based sources, build output and search database
// access.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/docsearch"
)

// Ensure SourceReader implements docsearch.SourceReader at compile time.
var _ docsearch.SourceReader = (*SourceReader)(nil)

// SourceReader lists markdown sources below a root directory with doublestar
// include and exclude patterns.
type SourceReader struct {
	root    string
	include []string
	exclude []string
}

// NewSourceReader creates a SourceReader. Patterns are slash-separated and
// relative to root, e.g. "**/*.md".
func NewSourceReader(root string, include, exclude []string) *SourceReader {
	return &SourceReader{root: root, include: include, exclude: exclude}
}

// List returns every file matching an include pattern and no exclude pattern,
// sorted by path.
func (r *SourceReader) List(ctx context.Context) ([]string, error) {
	for _, p := range append(slices.Clone(r.include), r.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, docsearch.Errorf(docsearch.EINVALID, "invalid pattern %q", p)
		}
	}

	fsys := os.DirFS(r.root)
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range r.include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok || r.excluded(m) {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func (r *SourceReader) excluded(path string) bool {
	for _, pattern := range r.exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Read returns the contents of the source at path.
func (r *SourceReader) Read(ctx context.Context, path string) ([]byte, error) {
	full, err := resolve(r.root, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "source %q not found", path)
	}
	return data, err
}

// resolve maps a slash-separated relative name to a path below root.
func resolve(root, name string) (string, error) {
	if !iofs.ValidPath(name) || name == "." {
		return "", docsearch.Errorf(docsearch.EINVALID, "invalid path %q", name)
	}
	return filepath.Join(root, filepath.FromSlash(name)), nil
}
