/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package flags binds the global CLI flags to viper and turns them into load options.
package flags

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/load"
)

// EnvPrefix is the prefix of environment variables overriding flags,
// e.g. TOKENINDEX_CLASS_WHITELIST.
const EnvPrefix = "TOKENINDEX"

// Keys of the global settings.
const (
	Root           = "root"
	Files          = "files"
	Roots          = "roots"
	ClassWhitelist = "class-whitelist"
	Verbose        = "verbose"
)

// Register adds the global flags to fs.
func Register(fs *pflag.FlagSet) {
	fs.String(Root, ".", "Project directory containing .config/tokenindex.{yaml,yml,json}")
	fs.StringSlice(Files, nil, "Source glob patterns (default **/*.css)")
	fs.StringSlice(Roots, nil, "Directories the source patterns are resolved against (default: project directory)")
	fs.StringSlice(ClassWhitelist, nil, "Regular expressions for class selectors whose custom properties are indexed")
	fs.BoolP(Verbose, "v", false, "Log skipped files and watcher events")
}

// Bind makes v read the flags in fs, with environment variables as fallback.
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(fs)
}

// Options returns the load options described by v.
func Options(v *viper.Viper) load.Options {
	return load.Options{
		Root:           v.GetString(Root),
		Files:          v.GetStringSlice(Files),
		Roots:          v.GetStringSlice(Roots),
		ClassWhitelist: v.GetStringSlice(ClassWhitelist),
	}
}
