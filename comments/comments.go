/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package comments

import "strings"

// MaxHeaderLength bounds the header comment stored in file summaries, in runes.
const MaxHeaderLength = 200

// Scanner answers comment queries against one source text.
// Build one per file; line classification is computed once.
type Scanner struct {
	lines []line
}

// NewScanner classifies the lines of source.
func NewScanner(source string) *Scanner {
	return &Scanner{lines: scanLines(source)}
}

// Preceding returns the comment bodies directly above the 1-based line,
// nearest first. Blank lines are skipped; the run ends at the first code
// line or the top of the file.
func (s *Scanner) Preceding(lineNumber int) []string {
	var bodies []string
	start := min(lineNumber-2, len(s.lines)-1)
	for i := start; i >= 0; i-- {
		l := s.lines[i]
		if l.kind == codeLine {
			break
		}
		if l.kind == commentLine && l.body != "" {
			bodies = append(bodies, l.body)
		}
	}
	return bodies
}

// Extract resolves alias and pattern for the declaration of name on the
// 1-based line.
func (s *Scanner) Extract(lineNumber int, name string) Metadata {
	return Parse(s.Preceding(lineNumber)).Resolve(name)
}

// Header returns the file's leading comment block, space-joined and
// truncated to MaxHeaderLength runes. Leading blank lines are skipped; the
// block ends at the first blank line after comment content or at code.
func (s *Scanner) Header() string {
	var parts []string
	seen := false
	for _, l := range s.lines {
		if l.kind == codeLine {
			break
		}
		if l.kind == blankLine {
			if seen {
				break
			}
			continue
		}
		seen = true
		if l.body != "" {
			parts = append(parts, l.body)
		}
	}
	return truncate(strings.Join(parts, " "), MaxHeaderLength)
}

// Extract is a convenience for a single lookup against source.
func Extract(source string, lineNumber int, name string) Metadata {
	return NewScanner(source).Extract(lineNumber, name)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
