/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	tifs "bennypowers.dev/tokenindex/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "tokenindex"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/tokenindex.{yaml,yml,json} from rootDir.
// JSON files may contain comments. Returns nil if no config found (not an error).
func Load(filesystem tifs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case ".json":
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, err
			}
		}

		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem tifs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg.WithDefaults()
}

// ResolveFiles expands Files against every root and returns a deduplicated
// list of absolute, non-directory paths in discovery order. Unreadable
// directories are skipped.
func (c *Config) ResolveFiles(filesystem tifs.FileSystem) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, root := range c.Roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		for _, pattern := range c.Files {
			expanded, err := expandFilePath(filesystem, absRoot, pattern)
			if err != nil {
				return nil, err
			}
			for _, path := range expanded {
				if seen[path] || c.Ignored(path) {
					continue
				}
				seen[path] = true
				result = append(result, path)
			}
		}
	}

	return result, nil
}

// Matches reports whether path is selected by Files under any root and not ignored.
func (c *Config) Matches(path string) bool {
	if c.Ignored(path) {
		return false
	}
	for _, root := range c.Roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		for _, pattern := range c.Files {
			if filepath.IsAbs(pattern) {
				if matchDoublestar(filepath.ToSlash(pattern), filepath.ToSlash(path)) {
					return true
				}
				continue
			}
			if matchDoublestar(filepath.ToSlash(filepath.Clean(pattern)), filepath.ToSlash(rel)) {
				return true
			}
		}
	}
	return false
}

// Ignored reports whether path matches an Ignore pattern.
func (c *Config) Ignored(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range c.Ignore {
		if matchDoublestar(pattern, slashed) || matchDoublestar(pattern, strings.TrimPrefix(slashed, "/")) {
			return true
		}
	}
	return false
}

// expandFilePath expands a single file path which may contain globs.
func expandFilePath(filesystem tifs.FileSystem, rootDir, pattern string) ([]string, error) {
	// Make pattern absolute if relative
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	if !containsGlob(pattern) {
		info, err := filesystem.Stat(pattern)
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the filesystem.
func expandGlob(filesystem tifs.FileSystem, pattern string) ([]string, error) {
	// Find the base directory (non-glob prefix)
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	if info, err := filesystem.Stat(baseDir); err != nil || !info.IsDir() {
		return nil, nil
	}

	// Get the relative pattern from baseDir
	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if matchDoublestar(filepath.ToSlash(relPattern), filepath.ToSlash(relPath)) {
			matches = append(matches, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return matches, nil
}

// matchDoublestar provides ** glob matching using the doublestar library.
func matchDoublestar(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}
