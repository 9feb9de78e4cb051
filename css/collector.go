/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package css collects design token declarations from stylesheets.
//
// Sources are parsed with tree-sitter. Plain stylesheets are read as-is;
// HTML, JavaScript and PHP files contribute the CSS they embed.
package css

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	ts "github.com/tree-sitter/go-tree-sitter"

	"bennypowers.dev/tokenindex/comments"
	"bennypowers.dev/tokenindex/normalize"
	"bennypowers.dev/tokenindex/selector"
	"bennypowers.dev/tokenindex/token"
)

// Collector turns file contents into candidate token records.
// It is safe for concurrent use.
type Collector struct {
	parsers   *ParserPool
	whitelist []*regexp.Regexp
}

// Result is what one file contributes to the index.
type Result struct {
	// Records are the candidate declarations in source order.
	Records []*token.Record

	// Header is the file's leading comment block.
	Header string
}

// NewCollector creates a collector that accepts class selectors matching whitelist.
func NewCollector(parsers *ParserPool, whitelist []*regexp.Regexp) *Collector {
	return &Collector{
		parsers:   parsers,
		whitelist: whitelist,
	}
}

// Collect parses src and returns the custom property declarations found in
// theme blocks and allow-listed rule sets. A source with syntax errors
// yields ErrParse and no records.
func (c *Collector) Collect(path string, src []byte) (*Result, error) {
	text, err := c.stylesheet(DetectLanguage(path), src)
	if err != nil {
		return nil, err
	}

	tree, err := c.parsers.Parse(LanguageCSS, text)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s", ErrParse, path)
	}

	w := &walker{
		path:      path,
		src:       text,
		host:      src,
		comments:  comments.NewScanner(string(text)),
		whitelist: c.whitelist,
	}
	w.walk(root)

	return &Result{
		Records: w.records,
		Header:  w.comments.Header(),
	}, nil
}

type walker struct {
	path      string
	src       []byte
	host      []byte
	comments  *comments.Scanner
	whitelist []*regexp.Regexp
	records   []*token.Record

	// counted and chars track the last converted byte offset, so character
	// offsets of in-order declarations are computed incrementally.
	counted int
	chars   int
}

func (w *walker) walk(n *ts.Node) {
	switch n.Kind() {
	case nodeRuleSet:
		w.ruleSet(n)
	case nodeAtRule:
		w.atRule(n)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		w.walk(n.Child(i))
	}
}

func (w *walker) ruleSet(n *ts.Node) {
	var selectors, block *ts.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		switch child := n.Child(i); child.Kind() {
		case nodeSelectors:
			selectors = child
		case nodeBlock:
			block = child
		}
	}
	if selectors == nil || block == nil {
		return
	}

	group := collapse(selectors.Utf8Text(w.src))
	if !selector.IsIndexable(group, w.whitelist) {
		return
	}

	scope := token.ScopeScoped
	if selector.IsRoot(group) {
		scope = token.ScopeRoot
	}
	w.declarations(block, group, scope)
}

// atRule handles @theme blocks. The selector is "theme" followed by any
// prelude qualifiers, as in "theme inline".
func (w *walker) atRule(n *ts.Node) {
	var keyword, block *ts.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		switch child := n.Child(i); child.Kind() {
		case nodeAtKeyword:
			keyword = child
		case nodeBlock:
			block = child
		}
	}
	if keyword == nil || block == nil || keyword.Utf8Text(w.src) != themeKeyword {
		return
	}

	prelude := collapse(string(w.src[keyword.EndByte():block.StartByte()]))
	sel := strings.TrimPrefix(themeKeyword, "@")
	if prelude != "" {
		sel += " " + prelude
	}
	w.declarations(block, sel, token.ScopeTheme)
}

// declarations records the custom properties directly inside block.
func (w *walker) declarations(block *ts.Node, sel string, scope token.Scope) {
	for i := uint(0); i < block.ChildCount(); i++ {
		decl := block.Child(i)
		if decl.Kind() != nodeDeclaration {
			continue
		}

		name, values := w.split(decl)
		if !strings.HasPrefix(name, token.CustomPropertyPrefix) {
			continue
		}

		value := regenerate(values, w.src)
		pos := decl.StartPosition()
		md := w.comments.Extract(int(pos.Row)+1, name)

		rec := &token.Record{
			Name:     name,
			RawValue: value,
			File:     w.path,
			Offset:   w.charOffset(int(decl.StartByte())),
			Line:     uint32(pos.Row),
			Column:   uint32(pos.Column),
			Selector: sel,
			Scope:    scope,
			Alias:    md.Alias,
			Pattern:  md.Pattern,
		}
		if ref, ok := normalize.VarReference(value); ok {
			rec.ReferencedVariable = ref
		}
		w.records = append(w.records, rec)
	}
}

// charOffset converts a byte offset into a character offset in the host
// file. Masked sources keep byte positions, so the host bytes are counted.
func (w *walker) charOffset(b int) int {
	if b < w.counted {
		w.counted, w.chars = 0, 0
	}
	w.chars += utf8.RuneCount(w.host[w.counted:b])
	w.counted = b
	return w.chars
}

// split returns a declaration's property name and its value nodes,
// excluding the colon, any !important flag and the trailing semicolon.
func (w *walker) split(decl *ts.Node) (string, []*ts.Node) {
	var name string
	var values []*ts.Node
	inValue := false
	for i := uint(0); i < decl.ChildCount(); i++ {
		child := decl.Child(i)
		switch kind := child.Kind(); {
		case kind == nodePropertyName:
			name = child.Utf8Text(w.src)
		case kind == ":" && !inValue:
			inValue = true
		case kind == ";", kind == nodeImportant:
		case inValue:
			values = append(values, child)
		}
	}
	return name, values
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
