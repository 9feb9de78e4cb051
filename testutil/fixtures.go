/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for tokenindex.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/tokenindex/internal/mapfs"
)

// ProjectRoot is where ProjectFS mounts the sample project.
const ProjectRoot = "/project"

// NewFixtureFS loads fixture files from testdata and returns a MapFileSystem
// with files mapped to the specified root path. Files are stamped in walk
// order, so each has a distinct modification time.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()
	fixturePath := locate(t, fixtureDir)

	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}

		return mfs.WriteFile(filepath.Join(rootPath, relPath), content, 0644)
	})

	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// ProjectFS mounts testdata/fixtures/project at ProjectRoot.
func ProjectFS(t *testing.T) *mapfs.MapFileSystem {
	t.Helper()
	return NewFixtureFS(t, "fixtures/project", ProjectRoot)
}

// LoadFixtureFile reads a single fixture file and returns its content.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	content, err := os.ReadFile(locate(t, fixturePath))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", fixturePath, err)
	}
	return content
}

// locate finds a testdata entry from any package directory depth.
func locate(t *testing.T, name string) string {
	t.Helper()

	for _, dir := range []string{"testdata", filepath.Join("..", "testdata"), filepath.Join("..", "..", "testdata")} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("Could not find fixture %s (tried all paths)", name)
	return ""
}
