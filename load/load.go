/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for opening a token index.
package load

import (
	"fmt"
	"path/filepath"

	"bennypowers.dev/tokenindex/config"
	"bennypowers.dev/tokenindex/fs"
	"bennypowers.dev/tokenindex/index"
)

// Options configures how the index is opened.
type Options struct {
	// Root is the project directory holding .config/tokenindex.*.
	// Relative Roots are resolved against it. Defaults to ".".
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Files are source glob patterns.
	// Takes precedence over config file if set.
	Files []string

	// Roots are the directories Files are resolved against.
	// Takes precedence over config file if set.
	Roots []string

	// ClassWhitelist are class selector regular expressions.
	// Takes precedence over config file if set.
	ClassWhitelist []string

	// Ignore are path patterns that are never indexed.
	// Takes precedence over config file if set.
	Ignore []string
}

// Config returns the effective configuration:
// Options, then .config/tokenindex.{yaml,yml,json}, then defaults.
// It fails when the config file is malformed or a whitelist pattern is invalid.
func Config(opts Options) (*config.Config, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root, err := absRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	if len(opts.Files) > 0 {
		cfg.Files = opts.Files
	}
	if len(opts.Roots) > 0 {
		cfg.Roots = opts.Roots
	}
	if len(opts.ClassWhitelist) > 0 {
		cfg.ClassWhitelist = opts.ClassWhitelist
	}
	if opts.Ignore != nil {
		cfg.Ignore = opts.Ignore
	}
	cfg = cfg.WithDefaults()

	roots := make([]string, len(cfg.Roots))
	for i, r := range cfg.Roots {
		if filepath.IsAbs(r) {
			roots[i] = filepath.Clean(r)
		} else {
			roots[i] = filepath.Join(root, r)
		}
	}
	cfg.Roots = roots

	if _, err := cfg.Compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Open resolves the effective configuration and creates an index for it
// without building. The caller owns the returned index and must Close it.
func Open(opts Options) (*index.Index, *config.Config, error) {
	cfg, err := Config(opts)
	if err != nil {
		return nil, nil, err
	}

	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	return index.New(filesystem, cfg), cfg, nil
}

// Load is Open followed by a full Build.
func Load(opts Options) (*index.Index, *config.Config, error) {
	idx, cfg, err := Open(opts)
	if err != nil {
		return nil, nil, err
	}
	idx.Build()
	return idx, cfg, nil
}

func absRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	if filepath.IsAbs(root) {
		return root, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}
	return abs, nil
}
