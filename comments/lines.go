/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package comments

import "strings"

type lineKind int

const (
	blankLine lineKind = iota
	commentLine
	codeLine
)

// line is one source line classified by what it contains.
// body holds the comment text with markers stripped.
type line struct {
	kind lineKind
	body string
}

// scanLines classifies every line of source. A line is a comment line when
// everything on it besides whitespace is inside a block comment or a line
// comment; any other non-blank content makes it code.
func scanLines(source string) []line {
	raw := strings.Split(source, "\n")
	lines := make([]line, len(raw))

	inBlock := false
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")

		startedInBlock := inBlock
		hasCode, hasComment := false, startedInBlock
		var body strings.Builder
		var quote byte

		for j := 0; j < len(text); j++ {
			c := text[j]
			switch {
			case inBlock:
				if c == '*' && j+1 < len(text) && text[j+1] == '/' {
					inBlock = false
					body.WriteByte(' ')
					j++
					continue
				}
				body.WriteByte(c)
			case quote != 0:
				if c == '\\' {
					j++
				} else if c == quote {
					quote = 0
				}
			case c == '/' && j+1 < len(text) && text[j+1] == '*':
				inBlock = true
				hasComment = true
				j++
			case c == '/' && j+1 < len(text) && text[j+1] == '/' && !hasCode:
				hasComment = true
				body.WriteString(text[j+2:])
				j = len(text)
			case c == ' ' || c == '\t':
			default:
				hasCode = true
				if c == '"' || c == '\'' {
					quote = c
				}
			}
		}

		switch {
		case hasCode:
			lines[i] = line{kind: codeLine}
		case hasComment:
			lines[i] = line{kind: commentLine, body: cleanBody(body.String())}
		default:
			lines[i] = line{kind: blankLine}
		}
	}

	return lines
}

// cleanBody strips javadoc-style leading asterisks and surrounding space.
func cleanBody(body string) string {
	body = strings.TrimSpace(body)
	body = strings.TrimLeft(body, "*")
	return strings.TrimSpace(body)
}
