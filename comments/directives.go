/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package comments recovers token metadata from CSS comments.
//
// Three directives are recognized inside comments that directly precede a
// custom property declaration:
//
//	/* @alias primary */
//	/* @pattern theme(colors.{}) */
//	/* @alias primary theme(colors.{}) */
//	/* @remove-prefix color */
//	/* @remove-prefix color "theme(colors.{})" */
//
// Patterns must contain the {} placeholder and may be quoted.
package comments

import (
	"regexp"
	"strings"

	"bennypowers.dev/tokenindex/token"
)

const (
	aliasName  = `([A-Za-z0-9_.-]+)`
	patternArg = `("[^"]*\{\}[^"]*"|'[^']*\{\}[^']*'|\S*\{\}\S*)`
)

var (
	aliasPatternDirective = regexp.MustCompile(`(?:^|\s)@alias\s+` + aliasName + `\s+` + patternArg)
	aliasDirective        = regexp.MustCompile(`(?:^|\s)@alias\s+` + aliasName + `(?:\s|$)`)
	patternDirective      = regexp.MustCompile(`(?:^|\s)@pattern\s+` + patternArg)
	removePrefixDirective = regexp.MustCompile(`(?:^|\s)@remove-prefix\s+([A-Za-z0-9_-]+)(?:\s+` + patternArg + `)?`)
)

// Metadata is the alias and pattern resolved for one declaration.
type Metadata struct {
	Alias   string
	Pattern string
}

// Directives are the raw directive values found above a declaration.
// The nearest occurrence of each directive wins.
type Directives struct {
	Alias               string
	Pattern             string
	RemovePrefix        string
	RemovePrefixPattern string
}

// Parse reads directives from a run of comment bodies ordered nearest first.
func Parse(bodies []string) Directives {
	var d Directives
	for _, body := range bodies {
		d.parseLine(body)
	}
	return d
}

func (d *Directives) parseLine(body string) {
	if m := aliasPatternDirective.FindStringSubmatch(body); m != nil {
		if d.Alias == "" {
			d.Alias = m[1]
		}
		if d.Pattern == "" {
			d.Pattern = unquote(m[2])
		}
		return
	}

	if m := aliasDirective.FindStringSubmatch(body); m != nil {
		if d.Alias == "" {
			d.Alias = m[1]
		}
		return
	}

	if m := patternDirective.FindStringSubmatch(body); m != nil {
		if d.Pattern == "" {
			d.Pattern = unquote(m[1])
		}
		return
	}

	if m := removePrefixDirective.FindStringSubmatch(body); m != nil {
		if d.RemovePrefix == "" {
			d.RemovePrefix = m[1]
			d.RemovePrefixPattern = unquote(m[2])
		}
	}
}

// Resolve derives the final metadata for the custom property name.
// Explicit @alias and @pattern directives take precedence over values
// derived from @remove-prefix.
func (d Directives) Resolve(name string) Metadata {
	md := Metadata{Alias: d.Alias, Pattern: d.Pattern}

	if md.Alias == "" && d.RemovePrefix != "" {
		md.Alias = StripPrefix(name, d.RemovePrefix)
	}
	if md.Pattern == "" && d.RemovePrefixPattern != "" {
		md.Pattern = d.RemovePrefixPattern
	}

	return md
}

// StripPrefix removes the custom property marker and then prefix from name.
// A "-" separator is appended to prefix when missing.
//
//	StripPrefix("--color-primary-500", "color") == "primary-500"
func StripPrefix(name, prefix string) string {
	bare := strings.TrimPrefix(name, token.CustomPropertyPrefix)
	if !strings.HasSuffix(prefix, "-") {
		prefix += "-"
	}
	return strings.TrimPrefix(bare, prefix)
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
