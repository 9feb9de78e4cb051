/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// Language is the grammar a source file is read with.
type Language int

const (
	// LanguageCSS is a plain stylesheet.
	LanguageCSS Language = iota
	// LanguageHTML is an HTML document with <style> elements.
	LanguageHTML
	// LanguageJavaScript is a module with css`` tagged templates.
	LanguageJavaScript
	// LanguagePHP is a PHP file with inline HTML.
	LanguagePHP
)

// String returns the language name.
func (l Language) String() string {
	switch l {
	case LanguageCSS:
		return "css"
	case LanguageHTML:
		return "html"
	case LanguageJavaScript:
		return "javascript"
	case LanguagePHP:
		return "php"
	default:
		return "unknown"
	}
}

// DetectLanguage picks the grammar for a path by extension.
// Anything unrecognized is read as CSS.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return LanguageHTML
	case ".js", ".mjs", ".cjs", ".jsx":
		return LanguageJavaScript
	case ".php":
		return LanguagePHP
	default:
		return LanguageCSS
	}
}

func (l Language) pointer() (unsafe.Pointer, error) {
	switch l {
	case LanguageCSS:
		return tree_sitter_css.Language(), nil
	case LanguageHTML:
		return tree_sitter_html.Language(), nil
	case LanguageJavaScript:
		return tree_sitter_javascript.Language(), nil
	case LanguagePHP:
		return tree_sitter_php.LanguagePHP(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", l)
	}
}
