// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"log"
	"strings"

	"github.com/ezrec/lisa/internal"
)

// Assembler is the single pass subroutine table builder for lisa programs.
// It validates the structure of a normalized program text; instructions
// themselves are only decoded when executed.
type Assembler struct {
	Verbose bool           // If set, verbosely logs the assembler actions.
	Label   map[string]int // Map of subroutine names to entry offsets.
}

// Parse checks a normalized program text, and builds its subroutine table.
func (asm *Assembler) Parse(text string) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if len(text) > 0 && text[len(text)-1] != '\n' {
		lineno = 1 + strings.Count(text, "\n")
		line = text[strings.LastIndexByte(text, '\n')+1:]
		err = ErrMissingTrailingNewline
		return
	}

	asm.Label = make(map[string]int, 16)

	// Subroutines still waiting for a standalone RET line.
	var open []string
	var openLine string
	var openLineNo int

	for offset, cur := range internal.Lines(text) {
		line = cur
		lineno += 1

		words, _ := Tokenize(line)
		if len(words) == 0 {
			continue
		}

		if len(words) == 1 && words[0] == KEYWORD_RETURN {
			open = open[:0]
			continue
		}

		if words[0] == KEYWORD_SUBROUTINE {
			if len(words) != 2 || !strings.HasSuffix(words[1], ":") || len(words[1]) == 1 {
				err = ErrSubroutineSyntax
				return
			}
			name := strings.TrimSuffix(words[1], ":")
			_, ok := asm.Label[name]
			if ok {
				err = errors.Join(ErrDuplicateSubroutine, ErrSubroutineName(name))
				return
			}
			entry := offset + len(line) + 1
			asm.Label[name] = entry
			if asm.Verbose {
				log.Printf("%v: subroutine %v at %04x", lineno, name, entry)
			}
			if len(open) == 0 {
				openLine = line
				openLineNo = lineno
			}
			open = append(open, name)
			continue
		}

		for _, word := range words {
			kind := Classify(word)
			if kind == OPERAND_STRING || kind == OPERAND_CHAR {
				continue
			}
			// Expressions may use ':' for slices and dicts.
			if strings.Contains(exprPattern.ReplaceAllString(word, ""), ":") {
				err = ErrSubroutineSyntax
				return
			}
		}
	}

	if len(open) != 0 {
		line = openLine
		lineno = openLineNo
		err = ErrSubroutineUnterminated
		return
	}

	prog = &Program{
		Text:   text,
		Labels: asm.Label,
	}

	return
}
