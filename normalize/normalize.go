/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package normalize maps raw CSS values to the canonical keys used by the token index.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Value returns the canonical form of a CSS value.
// The second result is false when the value cannot be indexed.
//
// Rules are applied in order and the first match wins:
// var() reference, hex color, functional color, dimension,
// comma-separated multi-part value, and finally the trimmed input.
func Value(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}

	if name, ok := VarReference(v); ok {
		return "var(" + name + ")", true
	}

	if HexColorPattern.MatchString(v) {
		return expandHex(strings.ToLower(v)), true
	}

	if FunctionalColorPattern.MatchString(v) {
		return strings.ToLower(whitespacePattern.ReplaceAllString(v, "")), true
	}

	if m := DimensionPattern.FindStringSubmatch(v); m != nil {
		if n, ok := formatNumber(m[1]); ok {
			return n + strings.ToLower(m[2]), true
		}
	}

	if strings.Contains(v, ",") {
		v = commaSpacePattern.ReplaceAllString(v, ",")
		v = whitespacePattern.ReplaceAllString(v, " ")
		return strings.TrimSpace(v), true
	}

	return v, true
}

// VarReference returns the referenced variable name when value is a single
// var() call. Any fallback is ignored, but the parenthesis closing the call
// must end the value.
func VarReference(value string) (string, bool) {
	v := strings.TrimSpace(value)
	m := VarReferencePattern.FindStringSubmatchIndex(v)
	if m == nil {
		return "", false
	}

	rest := v[m[1]:]
	if rest == "" || (rest[0] != ')' && rest[0] != ',') {
		return "", false
	}
	if closingParen(rest) != len(rest)-1 {
		return "", false
	}
	return v[m[2]:m[3]], true
}

// closingParen returns the index in s of the parenthesis that closes an
// already opened call, or -1. Quoted strings are skipped.
func closingParen(s string) int {
	depth := 1
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// expandHex doubles each digit of a 3 or 4 digit hex color.
func expandHex(hex string) string {
	digits := hex[1:]
	if len(digits) != 3 && len(digits) != 4 {
		return hex
	}
	var sb strings.Builder
	sb.Grow(1 + len(digits)*2)
	sb.WriteByte('#')
	for i := 0; i < len(digits); i++ {
		sb.WriteByte(digits[i])
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// formatNumber writes integers without a decimal point and everything
// else rounded to four fractional digits with trailing zeros stripped.
func formatNumber(raw string) (string, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	if f == math.Trunc(f) {
		if f == 0 {
			return "0", true
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s, true
}
