// Package source normalizes lisa program text before it is assembled.
package source

import (
	"strings"

	"github.com/ezrec/lisa/internal"
)

// Normalize strips // comments, collapses repeated spaces and tabs after
// the line's indentation into single spaces, and drops trailing
// whitespace. Line numbering is preserved. Trailing blank lines are
// collapsed so that a text ending in a newline ends in exactly one; a
// text without a final newline keeps that defect for the assembler to
// report.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	terminated := strings.HasSuffix(text, "\n")

	var out strings.Builder
	for _, line := range internal.Lines(text) {
		out.WriteString(normalizeLine(line))
		out.WriteByte('\n')
	}

	result := strings.TrimRight(out.String(), "\n")
	if terminated && len(result) > 0 {
		result += "\n"
	}

	return result
}

// normalizeLine normalizes a single line, with quote tracking so that
// comment markers and spacing inside string literals are preserved.
// Inside a $(...) span, // is integer division, not a comment.
func normalizeLine(line string) string {
	var out strings.Builder

	indent := len(line) - len(strings.TrimLeft(line, " \t"))

	quoted := false
	space := false
	paren := 0
	for i := indent; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted:
			out.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				out.WriteByte(line[i])
			} else if c == '"' {
				quoted = false
			}
			continue
		case c == ' ' || c == '\t':
			space = true
			continue
		case c == '/' && paren == 0 && i+1 < len(line) && line[i+1] == '/':
			i = len(line)
			continue
		}

		if space && out.Len() > 0 {
			out.WriteByte(' ')
			space = false
		}

		switch {
		case c == '"' && paren == 0:
			quoted = true
			out.WriteByte(c)
		case c == '\'' && paren == 0 && i+1 < len(line):
			out.WriteByte(c)
			i++
			out.WriteByte(line[i])
		case c == '$' && i+1 < len(line) && line[i+1] == '(':
			out.WriteString("$(")
			i++
			paren++
		case paren > 0 && c == '(':
			paren++
			out.WriteByte(c)
		case paren > 0 && c == ')':
			paren--
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}

	// Pending spaces are only written before a following character, so
	// the body never has trailing whitespace.
	if out.Len() == 0 {
		return ""
	}

	return line[:indent] + out.String()
}
