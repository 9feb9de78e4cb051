/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/tokenindex/internal/mapfs"
	"bennypowers.dev/tokenindex/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if !slices.Equal(cfg.Files, []string{"styles/**/*.css", "pages/*.html"}) {
		t.Errorf("unexpected files: %v", cfg.Files)
	}
	if !slices.Equal(cfg.Roots, []string{"/project"}) {
		t.Errorf("unexpected roots: %v", cfg.Roots)
	}
	if !slices.Equal(cfg.ClassWhitelist, []string{`^\.theme-`, `^\.dark$`}) {
		t.Errorf("unexpected whitelist: %v", cfg.ClassWhitelist)
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/jsonc", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if !slices.Equal(cfg.Files, []string{"**/*.css"}) {
		t.Errorf("unexpected files: %v", cfg.Files)
	}
	if !slices.Equal(cfg.ClassWhitelist, []string{`^\.brand`}) {
		t.Errorf("unexpected whitelist: %v", cfg.ClassWhitelist)
	}
	if !slices.Equal(cfg.Ignore, []string{"**/vendor/**"}) {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
}

func TestLoad_NotFound(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/empty", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/tokenindex.yaml", "files: [unclosed", 0644)

	if _, err := Load(mfs, "/project"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadOrDefault(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/empty", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if !slices.Equal(cfg.Files, DefaultFiles) {
		t.Errorf("expected default files, got %v", cfg.Files)
	}
	if !slices.Equal(cfg.Roots, []string{"."}) {
		t.Errorf("expected default roots, got %v", cfg.Roots)
	}
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := (&Config{Files: []string{"a.css"}, Ignore: []string{}}).WithDefaults()
	if !slices.Equal(cfg.Files, []string{"a.css"}) {
		t.Errorf("files overwritten: %v", cfg.Files)
	}
	if len(cfg.Ignore) != 0 {
		t.Errorf("explicit empty ignore list replaced: %v", cfg.Ignore)
	}
}

func TestCompile(t *testing.T) {
	cfg := &Config{ClassWhitelist: []string{`^\.ok`, `(`, ""}}

	compiled, err := cfg.Compile()
	if !errors.Is(err, ErrInvalidWhitelist) {
		t.Fatalf("expected ErrInvalidWhitelist, got %v", err)
	}
	if len(compiled) != 1 {
		t.Fatalf("expected 1 compiled pattern, got %d", len(compiled))
	}
	if !compiled[0].MatchString(".ok-go") {
		t.Error("compiled pattern does not match")
	}

	if _, err := (&Config{ClassWhitelist: []string{`^\.a`}}).Compile(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResolveFiles(t *testing.T) {
	mfs := testutil.ProjectFS(t)

	cfg := (&Config{
		Files: []string{"**/*.css", "pages/*.html", "styles/tokens.css", "missing.css"},
		Roots: []string{"/project"},
	}).WithDefaults()

	files, err := cfg.ResolveFiles(mfs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"/project/pages/index.html",
		"/project/styles/components/broken.css",
		"/project/styles/themes.css",
		"/project/styles/tokens.css",
	}
	got := slices.Clone(files)
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("ResolveFiles() =\n%v\nwant\n%v", got, want)
	}
}

func TestResolveFiles_MultipleRootsDeduplicate(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/a/x.css", ":root{}", 0644)
	mfs.AddFile("/b/y.css", ":root{}", 0644)

	cfg := &Config{
		Files: []string{"*.css", "/a/x.css"},
		Roots: []string{"/a", "/b"},
	}

	files, err := cfg.ResolveFiles(mfs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(files, []string{"/a/x.css", "/b/y.css"}) {
		t.Errorf("unexpected files: %v", files)
	}
}

func TestResolveFiles_MissingRoot(t *testing.T) {
	cfg := &Config{Files: []string{"**/*.css"}, Roots: []string{"/nowhere"}}

	files, err := cfg.ResolveFiles(mapfs.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestMatches(t *testing.T) {
	cfg := (&Config{
		Files: []string{"styles/**/*.css"},
		Roots: []string{"/project"},
	}).WithDefaults()

	tests := []struct {
		path string
		want bool
	}{
		{"/project/styles/a.css", true},
		{"/project/styles/deep/b.css", true},
		{"/project/other/c.css", false},
		{"/elsewhere/styles/a.css", false},
		{"/project/styles/node_modules/d.css", false},
	}
	for _, tt := range tests {
		if got := cfg.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
