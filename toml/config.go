// Package toml loads project configuration with github.com/BurntSushi/toml.
package toml

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/docsearch"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "docsearch.toml"

// LoadConfig reads the config file at path on top of docsearch.DefaultConfig.
// Relative directories in the file are resolved against the file's directory.
// Returns ENOTFOUND if the file does not exist and EINVALID for unknown keys
// or an invalid result.
func LoadConfig(path string) (*docsearch.Config, error) {
	cfg := docsearch.DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, docsearch.Errorf(docsearch.EINVALID, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	cfg.SourceDir = resolve(dir, cfg.SourceDir)
	cfg.OutputDir = resolve(dir, cfg.OutputDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
