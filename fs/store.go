package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
)

// Ensure Store implements docsearch.OutputStore at compile time.
var _ docsearch.OutputStore = (*Store)(nil)

// Store writes build output below a root directory. Every write goes to a
// temporary file that is renamed over the target, so readers never see a
// partial file.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

func (s *Store) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := resolve(s.root, name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

// WriteIfChanged compares xxhash digests of data and the current file and
// writes only when they differ or the file does not exist.
func (s *Store) WriteIfChanged(ctx context.Context, name string, data []byte) (bool, error) {
	current, err := s.ReadFile(ctx, name)
	switch {
	case err == nil:
		if len(current) == len(data) && xxhash.Sum64(current) == xxhash.Sum64(data) {
			return false, nil
		}
	case docsearch.ErrorCode(err) != docsearch.ENOTFOUND:
		return false, err
	}

	if err := s.WriteFile(ctx, name, data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := resolve(s.root, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "output %q not found", name)
	}
	return data, err
}
