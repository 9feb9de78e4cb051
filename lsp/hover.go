/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lsp

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"bennypowers.dev/tokenindex/normalize"
)

// ErrNotFileURI is returned for document URIs outside the local filesystem.
var ErrNotFileURI = errors.New("not a file URI")

// declarationPattern matches a single-line `property: value` declaration.
var declarationPattern = regexp.MustCompile(`^\s*(-{0,2}[A-Za-z_][-\w]*)\s*:\s*([^;{}]+?)\s*(?:!important\s*)?;?\s*$`)

// hoverMarkdown describes the tokens whose value matches the declaration on line.
func hoverMarkdown(line string, idx Index) (string, bool) {
	m := declarationPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	property, value := m[1], m[2]

	key, ok := normalize.Value(value)
	if !ok {
		return "", false
	}

	var b strings.Builder
	for _, r := range idx.FindByValue(key) {
		if r.Name == property {
			continue
		}
		if b.Len() == 0 {
			fmt.Fprintf(&b, "**Design tokens for** `%s`\n\n", key)
		}
		fmt.Fprintf(&b, "- `var(%s)`", r.Name)
		if r.Alias != "" {
			fmt.Fprintf(&b, " alias `%s`", r.Apply())
		}
		fmt.Fprintf(&b, " in `%s` (%s:%d)\n", r.Selector, filepath.Base(r.File), r.Line+1)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// lineAt returns the 0-based line of text.
func lineAt(text string, line uint32) (string, bool) {
	lines := strings.Split(text, "\n")
	if int(line) >= len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line], "\r"), true
}

func uriToPath(uri protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(uri))
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrNotFileURI, string(uri))
	}
	return filepath.FromSlash(u.Path), nil
}
