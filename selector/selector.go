/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package selector decides which selector groups are scanned for design tokens.
package selector

import (
	"regexp"
	"strings"
)

// Root is the root pseudo-class.
const Root = ":root"

// DocumentElement is the document element tag.
const DocumentElement = "html"

var (
	rootPattern      = regexp.MustCompile(`^:root\b`)
	htmlPattern      = regexp.MustCompile(`^html\b`)
	dataThemePattern = regexp.MustCompile(`\[\s*data-theme\s*(?:[~|^$*]?=\s*[^\]]*)?\]`)
)

// IsIndexable reports whether every selector in the comma-separated group
// is allowed: :root, html, a [data-theme] attribute selector, or a selector
// matched by one of the whitelist patterns.
func IsIndexable(group string, whitelist []*regexp.Regexp) bool {
	parts := Split(group)
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if !isAllowed(part, whitelist) {
			return false
		}
	}
	return true
}

// IsRoot reports whether the selector is exactly :root or html.
func IsRoot(sel string) bool {
	sel = strings.TrimSpace(sel)
	return sel == Root || sel == DocumentElement
}

func isAllowed(sel string, whitelist []*regexp.Regexp) bool {
	if sel == "" {
		return false
	}
	if rootPattern.MatchString(sel) || htmlPattern.MatchString(sel) {
		return true
	}
	if dataThemePattern.MatchString(sel) {
		return true
	}
	for _, re := range whitelist {
		if re != nil && re.MatchString(sel) {
			return true
		}
	}
	return false
}

// Split splits a selector group on top-level commas. Commas nested in
// parentheses or brackets, as in :is(a, b), do not split.
func Split(group string) []string {
	var parts []string
	depth := 0
	start := 0
	var quote byte
	for i := 0; i < len(group); i++ {
		c := group[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(group[start:i]))
			start = i + 1
		}
	}
	if last := strings.TrimSpace(group[start:]); last != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	return parts
}
