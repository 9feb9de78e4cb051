/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the token index.
package config

import (
	"errors"
	"fmt"
	"regexp"

	"bennypowers.dev/tokenindex/selector"
)

// ErrInvalidWhitelist indicates a class whitelist pattern failed to compile.
var ErrInvalidWhitelist = errors.New("invalid class whitelist")

// DefaultFiles are the source patterns used when none are configured.
var DefaultFiles = []string{"**/*.css"}

// DefaultIgnore are path patterns never indexed.
var DefaultIgnore = []string{"**/node_modules/**", "**/.git/**"}

// Config represents the token index configuration.
type Config struct {
	// Files are glob patterns, relative to each root, naming source files.
	Files []string `yaml:"files" json:"files" mapstructure:"files"`

	// Roots are the directories Files are resolved against.
	Roots []string `yaml:"roots" json:"roots" mapstructure:"roots"`

	// ClassWhitelist are regular expressions for class selectors whose
	// custom properties are indexed.
	ClassWhitelist []string `yaml:"classWhitelist" json:"classWhitelist" mapstructure:"classWhitelist"`

	// Ignore are glob patterns, matched against absolute paths, that are
	// never indexed.
	Ignore []string `yaml:"ignore" json:"ignore" mapstructure:"ignore"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Files:          append([]string(nil), DefaultFiles...),
		Roots:          []string{"."},
		ClassWhitelist: nil,
		Ignore:         append([]string(nil), DefaultIgnore...),
	}
}

// WithDefaults fills empty fields from Default.
func (c *Config) WithDefaults() *Config {
	d := Default()
	out := *c
	if len(out.Files) == 0 {
		out.Files = d.Files
	}
	if len(out.Roots) == 0 {
		out.Roots = d.Roots
	}
	if out.Ignore == nil {
		out.Ignore = d.Ignore
	}
	return &out
}

// Compile compiles ClassWhitelist. Valid patterns are always returned;
// the error lists the ones that failed.
func (c *Config) Compile() ([]*regexp.Regexp, error) {
	compiled, errs := selector.CompileWhitelist(c.ClassWhitelist)
	if len(errs) > 0 {
		return compiled, fmt.Errorf("%w: %w", ErrInvalidWhitelist, errors.Join(errs...))
	}
	return compiled, nil
}
