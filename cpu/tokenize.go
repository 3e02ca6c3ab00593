package cpu

import (
	"strings"
)

// Tokenize splits a line into words on spaces.
//
// A double-quoted span, with its quotes, is never split, and a backslash
// inside it escapes the next character. A $(...) expression is never
// split. A character literal ('c) takes the next character verbatim, even
// a space or a quote. Leading indentation and repeated spaces are ignored.
func Tokenize(line string) (words []string, err error) {
	var word strings.Builder
	quoted := false
	paren := 0

	flush := func() {
		if word.Len() == 0 || err != nil {
			return
		}
		if word.Len() > OPERAND_LIMIT {
			err = ErrOperandTooLong
			return
		}
		if len(words) == WORD_LIMIT {
			err = ErrOperandCount
			return
		}
		words = append(words, word.String())
		word.Reset()
	}

	for i := 0; i < len(line) && err == nil; i++ {
		c := line[i]
		switch {
		case quoted:
			word.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				word.WriteByte(line[i])
			} else if c == '"' {
				quoted = false
			}
		case paren > 0:
			word.WriteByte(c)
			switch c {
			case '(':
				paren++
			case ')':
				paren--
			}
		case c == ' ' || c == '\t':
			flush()
		case c == '"':
			quoted = true
			word.WriteByte(c)
		case c == '\'' && word.Len() == 0 && i+1 < len(line):
			word.WriteByte(c)
			i++
			word.WriteByte(line[i])
			if line[i] == '\\' && i+1 < len(line) {
				i++
				word.WriteByte(line[i])
			}
		case c == '$' && i+1 < len(line) && line[i+1] == '(':
			word.WriteString("$(")
			i++
			paren = 1
		default:
			word.WriteByte(c)
		}
	}

	if err != nil {
		words = nil
		return
	}

	if quoted || paren > 0 {
		err = &ErrOperand{Operand: word.String(), Err: ErrMalformedOperand}
		words = nil
		return
	}

	flush()
	if err != nil {
		words = nil
	}

	return
}
