/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

// tree-sitter-css node kinds.
const (
	nodeRuleSet      = "rule_set"
	nodeSelectors    = "selectors"
	nodeBlock        = "block"
	nodeDeclaration  = "declaration"
	nodePropertyName = "property_name"
	nodeImportant    = "important"
	nodeAtRule       = "at_rule"
	nodeAtKeyword    = "at_keyword"
	nodeComment      = "comment"
	nodeJSComment    = "js_comment"
	nodeIntegerValue = "integer_value"
	nodeFloatValue   = "float_value"
	nodeStringValue  = "string_value"
	nodeColorValue   = "color_value"
	nodePlainValue   = "plain_value"
)

// tree-sitter-html, tree-sitter-javascript and tree-sitter-php node kinds.
const (
	nodeStyleElement     = "style_element"
	nodeRawText          = "raw_text"
	nodeCallExpression   = "call_expression"
	nodeTemplateString   = "template_string"
	nodeStringFragment   = "string_fragment"
	nodeEscapeSequence   = "escape_sequence"
	nodeIdentifier       = "identifier"
	nodeMemberExpression = "member_expression"
	nodePHPText          = "text"
)

// themeKeyword is the at-rule that groups theme variables.
const themeKeyword = "@theme"
