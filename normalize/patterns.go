/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package normalize

import "regexp"

// VarReferencePattern matches the opening of a var() call up to the
// variable name. Group 1 is the variable name.
var VarReferencePattern = regexp.MustCompile(`^var\(\s*(--[A-Za-z0-9_-]+)\s*`)

// HexColorPattern matches 3, 4, 6 and 8 digit hex colors.
var HexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// FunctionalColorPattern matches the start of rgb(), rgba(), hsl() and hsla() values.
var FunctionalColorPattern = regexp.MustCompile(`(?i)^(?:rgba?|hsla?)\(`)

// DimensionPattern matches a number immediately followed by a known unit.
// Group 1 is the number, group 2 the unit.
var DimensionPattern = regexp.MustCompile(`(?i)^(-?(?:\d+\.?\d*|\.\d+))(px|rem|em|%|vh|vw|dvh|svh|lvh)$`)

var (
	commaSpacePattern = regexp.MustCompile(`\s*,\s*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)
