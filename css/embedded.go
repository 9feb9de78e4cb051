/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// span is a half-open byte range in a source file.
type span struct {
	start, end uint
}

// stylesheet returns the CSS view of src for the given language.
// Embedded styles are returned as a copy of src where every byte outside
// the styles is blanked to a space and line breaks are kept, so offsets,
// lines and columns still point into the host file.
func (c *Collector) stylesheet(lang Language, src []byte) ([]byte, error) {
	switch lang {
	case LanguageHTML:
		return c.htmlStyles(src)
	case LanguageJavaScript:
		return c.taggedTemplates(src)
	case LanguagePHP:
		inline, err := c.phpInlineHTML(src)
		if err != nil {
			return nil, err
		}
		return c.htmlStyles(inline)
	default:
		return src, nil
	}
}

// htmlStyles keeps the contents of <style> elements.
func (c *Collector) htmlStyles(src []byte) ([]byte, error) {
	return c.keep(LanguageHTML, src, func(n *ts.Node) ([]span, bool) {
		if n.Kind() != nodeStyleElement {
			return nil, false
		}
		var spans []span
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child.Kind() == nodeRawText {
				spans = append(spans, span{child.StartByte(), child.EndByte()})
			}
		}
		return spans, true
	})
}

// taggedTemplates keeps the literal parts of css`` tagged templates.
// Substitutions are blanked.
func (c *Collector) taggedTemplates(src []byte) ([]byte, error) {
	return c.keep(LanguageJavaScript, src, func(n *ts.Node) ([]span, bool) {
		if n.Kind() != nodeCallExpression {
			return nil, false
		}
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn == nil || args == nil || args.Kind() != nodeTemplateString || !isCSSTag(fn, src) {
			return nil, false
		}
		var spans []span
		for i := uint(0); i < args.ChildCount(); i++ {
			switch child := args.Child(i); child.Kind() {
			case nodeStringFragment, nodeEscapeSequence:
				spans = append(spans, span{child.StartByte(), child.EndByte()})
			}
		}
		return spans, true
	})
}

// isCSSTag matches css`` and lit.css``.
func isCSSTag(fn *ts.Node, src []byte) bool {
	switch fn.Kind() {
	case nodeIdentifier:
		return fn.Utf8Text(src) == "css"
	case nodeMemberExpression:
		prop := fn.ChildByFieldName("property")
		return prop != nil && prop.Utf8Text(src) == "css"
	}
	return false
}

// phpInlineHTML keeps the HTML outside of PHP tags.
func (c *Collector) phpInlineHTML(src []byte) ([]byte, error) {
	return c.keep(LanguagePHP, src, func(n *ts.Node) ([]span, bool) {
		if n.Kind() != nodePHPText {
			return nil, false
		}
		return []span{{n.StartByte(), n.EndByte()}}, true
	})
}

// keep parses src and returns the blanked copy preserving the spans that
// match reports. Children of a matched node are not visited.
func (c *Collector) keep(lang Language, src []byte, match func(*ts.Node) ([]span, bool)) ([]byte, error) {
	tree, err := c.parsers.Parse(lang, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s host: %w", lang, err)
	}
	defer tree.Close()

	var spans []span
	var visit func(n *ts.Node)
	visit = func(n *ts.Node) {
		if found, ok := match(n); ok {
			spans = append(spans, found...)
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	visit(tree.RootNode())

	return blank(src, spans), nil
}

// blank copies src with everything outside spans replaced by spaces.
// Line breaks are kept so line numbers do not move.
func blank(src []byte, spans []span) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		if b == '\n' || b == '\r' {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	for _, s := range spans {
		if s.end > uint(len(src)) || s.start > s.end {
			continue
		}
		copy(out[s.start:s.end], src[s.start:s.end])
	}
	return out
}
