/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// atomicKinds are written out whole rather than by their children.
var atomicKinds = map[string]bool{
	nodeIntegerValue: true,
	nodeFloatValue:   true,
	nodeStringValue:  true,
	nodeColorValue:   true,
	nodePlainValue:   true,
}

// regenerate writes the canonical text of a declaration's value nodes.
// Comments are dropped and every run of whitespace between tokens becomes
// one space; string literals are kept verbatim.
func regenerate(nodes []*ts.Node, src []byte) string {
	var sb strings.Builder
	var prevEnd uint
	started := false

	var emit func(n *ts.Node)
	emit = func(n *ts.Node) {
		if n == nil || n.IsMissing() || isComment(n) {
			return
		}
		if n.ChildCount() == 0 || atomicKinds[n.Kind()] {
			if started && n.StartByte() > prevEnd {
				sb.WriteByte(' ')
			}
			text := n.Utf8Text(src)
			if n.Kind() != nodeStringValue {
				text = strings.Join(strings.Fields(text), " ")
			}
			sb.WriteString(text)
			prevEnd = n.EndByte()
			started = true
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			emit(n.Child(i))
		}
	}

	for _, n := range nodes {
		emit(n)
	}
	return strings.TrimSpace(sb.String())
}

func isComment(n *ts.Node) bool {
	k := n.Kind()
	return k == nodeComment || k == nodeJSComment
}
