package internal

import (
	"iter"
	"strings"
)

// Lines iterates over the lines of text, yielding the byte offset of the
// start of each line and the line without its terminating newline.
// A final fragment without a newline is yielded as well.
func Lines(text string) iter.Seq2[int, string] {
	return LinesFrom(text, 0)
}

// LinesFrom is Lines, starting at a byte offset that is expected to be at
// the start of a line.
func LinesFrom(text string, offset int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for offset < len(text) {
			line := text[offset:]
			end := strings.IndexByte(line, '\n')
			if end >= 0 {
				line = line[:end]
			}
			if !yield(offset, line) {
				return // Stop if the consumer stops
			}
			offset += len(line) + 1
		}
	}
}
