/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tokenindex/colors"
	"bennypowers.dev/tokenindex/token"
)

// Format names accepted by the --format flag.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatNames    = "names"
	FormatMarkdown = "markdown"
)

// Row holds computed display values for a single token.
type Row struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Selector    string `json:"selector"`
	Scope       string `json:"scope"`
	Alias       string `json:"alias,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	References  string `json:"references,omitempty"`
	Location    string `json:"location"`
	IsColor     bool   `json:"-"`
}

// FileRow holds display values for one indexed file.
type FileRow struct {
	Path         string `json:"path"`
	Tokens       int    `json:"tokens"`
	Header       string `json:"header,omitempty"`
	LastModified string `json:"lastModified"`
}

// ComputeRows converts records to rows. Locations are made relative to base when possible.
func ComputeRows(records []token.Record, base string) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{
			Name:       r.Name,
			Value:      r.RawValue,
			Selector:   r.Selector,
			Scope:      r.Scope.String(),
			Alias:      r.Alias,
			References: r.ReferencedVariable,
			Location:   fmt.Sprintf("%s:%d:%d", relative(base, r.File), r.Line+1, r.Column+1),
			IsColor:    !r.IsReference() && colors.IsColor(r.RawValue),
		}
		if r.Alias != "" {
			row.Replacement = r.Apply()
		}
		rows = append(rows, row)
	}
	return rows
}

// ComputeFileRows converts summaries to rows.
func ComputeFileRows(summaries []token.FileSummary, base string) []FileRow {
	rows := make([]FileRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, FileRow{
			Path:         relative(base, s.Path),
			Tokens:       s.TokenCount,
			Header:       s.HeaderComment,
			LastModified: s.LastModified.Format("2006-01-02 15:04:05"),
		})
	}
	return rows
}

// Tokens renders rows in the named format.
func Tokens(w io.Writer, format string, rows []Row) error {
	switch format {
	case FormatJSON:
		return JSON(w, rows)
	case FormatNames:
		return Names(w, rows)
	case FormatMarkdown:
		return Markdown(w, rows)
	case FormatTable, "":
		return Table(w, rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// ColumnWidths calculates the max width needed for the name, value and selector columns.
func ColumnWidths(rows []Row) (name, val, sel int) {
	name, val, sel = 4, 5, 8 // minimums for headers
	for _, r := range rows {
		name = max(name, len(r.Name))
		val = max(val, len(r.Value))
		sel = max(sel, len(r.Selector))
	}
	return
}

// Table renders rows as an aligned table. Color values get a swatch.
func Table(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	nameW, valW, selW := ColumnWidths(rows)
	for _, r := range rows {
		swatch := "   "
		if r.IsColor {
			swatch = colors.Swatch(r.Value)
		}
		alias := ""
		if r.Replacement != "" {
			alias = "  → " + r.Replacement
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s%-*s  %-*s  %s%s\n",
			nameW, r.Name, swatch, valW, r.Value, selW, r.Selector, r.Location, alias); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders rows as markdown tables grouped by scope.
func Markdown(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	// Group rows by scope, preserving order of first occurrence
	scopeOrder := make([]string, 0)
	byScope := make(map[string][]Row)
	for _, r := range rows {
		if _, exists := byScope[r.Scope]; !exists {
			scopeOrder = append(scopeOrder, r.Scope)
		}
		byScope[r.Scope] = append(byScope[r.Scope], r)
	}

	for i, scope := range scopeOrder {
		group := byScope[scope]
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## %s\n\n", toTitleCase(scope))

		nameW, valW, selW := ColumnWidths(group)
		fmt.Fprintf(w, "| %-*s | %-*s | %-*s |\n", nameW, "Name", valW, "Value", selW, "Selector")
		fmt.Fprintf(w, "|-%s-|-%s-|-%s-|\n", strings.Repeat("-", nameW), strings.Repeat("-", valW), strings.Repeat("-", selW))
		for _, r := range group {
			fmt.Fprintf(w, "| %-*s | %-*s | %-*s |\n", nameW, r.Name, valW, escapePipes(r.Value), selW, escapePipes(r.Selector))
		}
	}
	return nil
}

// Names renders just the token names, one per line.
func Names(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Name); err != nil {
			return err
		}
	}
	return nil
}

// Files renders file rows in the named format.
func Files(w io.Writer, format string, rows []FileRow) error {
	switch format {
	case FormatJSON:
		return JSON(w, rows)
	case FormatNames:
		for _, r := range rows {
			fmt.Fprintln(w, r.Path)
		}
		return nil
	case FormatTable, FormatMarkdown, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if len(rows) == 0 {
		return nil
	}
	pathW := len("path")
	for _, r := range rows {
		pathW = max(pathW, len(r.Path))
	}
	fmt.Fprintf(w, "%-*s  %6s  %s\n", pathW, toTitleCase("path"), toTitleCase("tokens"), toTitleCase("header"))
	for _, r := range rows {
		fmt.Fprintf(w, "%-*s  %6d  %s\n", pathW, r.Path, r.Tokens, r.Header)
	}
	return nil
}

// JSON renders v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func relative(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
