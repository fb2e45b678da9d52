// loader.go — Load sticker configs from JSON or YAML and resolve asset paths.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrAssetNotFound marks a referenced font or image file missing on disk.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrUnresolvedPath marks an internal contract violation: a path was
	// required but the sticker carries none.
	ErrUnresolvedPath = errors.New("path required but not set")
)

// Load reads a configuration file (format chosen by extension), applies
// defaults and clamps, and returns the config together with the directory
// all relative asset paths resolve against.
func Load(path string) (*GenerationConfig, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read config: %w", err)
	}

	var cfg GenerationConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, "", fmt.Errorf("unsupported config format %q: use .json, .yaml or .yml", ext)
	}

	if len(cfg.Stickers) == 0 {
		return nil, "", fmt.Errorf("config %s must define a non-empty stickers list", path)
	}

	cfg.Normalize()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve config path: %w", err)
	}
	return &cfg, filepath.Dir(abs), nil
}

// ResolvePath turns an asset reference into an absolute path rooted at
// baseDir and verifies it exists. An empty reference is a contract violation
// on the caller's side, not a missing file.
func ResolvePath(baseDir, ref string) (string, error) {
	if ref == "" {
		return "", ErrUnresolvedPath
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	return path, nil
}
