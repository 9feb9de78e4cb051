/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the record types stored in the token index.
package token

import (
	"strings"
	"time"
)

// CustomPropertyPrefix marks a CSS custom property name.
const CustomPropertyPrefix = "--"

// Scope classifies where a custom property is declared.
type Scope string

const (
	// ScopeTheme is a declaration inside a theme at-rule (@theme, @theme inline).
	ScopeTheme Scope = "theme"

	// ScopeRoot is a declaration under :root or html.
	ScopeRoot Scope = "root"

	// ScopeScoped is a declaration under any other allow-listed selector.
	ScopeScoped Scope = "scoped"
)

// String returns the scope name.
func (s Scope) String() string {
	return string(s)
}

// Record is a single design token declaration found in an indexed file.
type Record struct {
	// Name is the custom property name, including the "--" prefix.
	Name string `json:"name"`

	// RawValue is the declared value, regenerated from the parse tree.
	RawValue string `json:"value"`

	// File is the absolute path of the declaring file.
	File string `json:"file"`

	// Offset is the character offset of the declaration within File.
	Offset int `json:"offset"`

	// Line is the 0-based line number of the declaration.
	Line uint32 `json:"line"`

	// Column is the 0-based byte column of the declaration.
	Column uint32 `json:"column"`

	// Selector is the selector group or theme marker the declaration lives under.
	Selector string `json:"selector"`

	// Scope is the scope kind of Selector.
	Scope Scope `json:"scope"`

	// Alias is a short name taken from comment directives.
	Alias string `json:"alias,omitempty"`

	// Pattern is a replacement template containing PatternPlaceholder.
	Pattern string `json:"pattern,omitempty"`

	// ReferencedVariable is set when RawValue is a single var() reference.
	ReferencedVariable string `json:"referencedVariable,omitempty"`
}

// Key identifies a declaration by its exact source position.
type Key struct {
	File   string
	Name   string
	Offset int
}

// Key returns the deduplication key for the record.
func (r *Record) Key() Key {
	return Key{File: r.File, Name: r.Name, Offset: r.Offset}
}

// IsReference reports whether the record's value is a var() reference.
func (r *Record) IsReference() bool {
	return r.ReferencedVariable != ""
}

// Apply renders the record's alias into its pattern.
// Returns the alias unchanged when there is no pattern.
func (r *Record) Apply() string {
	if r.Pattern == "" {
		return r.Alias
	}
	return strings.ReplaceAll(r.Pattern, PatternPlaceholder, r.Alias)
}

// PatternPlaceholder marks where the alias goes in a replacement pattern.
const PatternPlaceholder = "{}"

// FileSummary describes one indexed file.
type FileSummary struct {
	// Path is the absolute path of the file.
	Path string `json:"path"`

	// HeaderComment is the file's leading comment block, space-joined and truncated.
	HeaderComment string `json:"headerComment,omitempty"`

	// TokenCount is the number of records collected from the file.
	TokenCount int `json:"tokenCount"`

	// LastModified is the file's modification time when it was indexed.
	LastModified time.Time `json:"lastModified"`
}
