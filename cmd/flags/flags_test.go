/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package flags

import (
	"slices"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newFlagSet(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	v := viper.New()
	if err := Bind(v, fs); err != nil {
		t.Fatalf("bind: %v", err)
	}
	return v
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options(newFlagSet(t))

	if opts.Root != "." {
		t.Errorf("Root = %q, want .", opts.Root)
	}
	if len(opts.Files) != 0 || len(opts.Roots) != 0 || len(opts.ClassWhitelist) != 0 {
		t.Errorf("expected empty slices, got %+v", opts)
	}
}

func TestOptions_Flags(t *testing.T) {
	opts := Options(newFlagSet(t,
		"--root", "/project",
		"--files", "a/*.css,b/**/*.css",
		"--class-whitelist", `^\.theme-`,
	))

	if opts.Root != "/project" {
		t.Errorf("Root = %q", opts.Root)
	}
	if !slices.Equal(opts.Files, []string{"a/*.css", "b/**/*.css"}) {
		t.Errorf("Files = %v", opts.Files)
	}
	if !slices.Equal(opts.ClassWhitelist, []string{`^\.theme-`}) {
		t.Errorf("ClassWhitelist = %v", opts.ClassWhitelist)
	}
}

func TestOptions_Environment(t *testing.T) {
	t.Setenv("TOKENINDEX_ROOT", "/from-env")
	t.Setenv("TOKENINDEX_CLASS_WHITELIST", `^\.a ^\.b`)

	opts := Options(newFlagSet(t))
	if opts.Root != "/from-env" {
		t.Errorf("Root = %q, want /from-env", opts.Root)
	}
	if !slices.Equal(opts.ClassWhitelist, []string{`^\.a`, `^\.b`}) {
		t.Errorf("ClassWhitelist = %v", opts.ClassWhitelist)
	}

	flagged := Options(newFlagSet(t, "--root", "/from-flag"))
	if flagged.Root != "/from-flag" {
		t.Errorf("flags should win over environment, got %q", flagged.Root)
	}
}
