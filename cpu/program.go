package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/lisa/internal"
)

// Program is a normalized program text and its subroutine table.
// The cursor of the machine is a byte offset into Text.
type Program struct {
	Text   string         // Normalized program text.
	Labels map[string]int // Map of subroutine names to entry offsets.
}

// Line returns the line starting at offset ip, and the offset of the
// following line.
func (prog *Program) Line(ip int) (line string, next int) {
	if ip >= len(prog.Text) {
		next = len(prog.Text)
		return
	}

	line = prog.Text[ip:]
	end := strings.IndexByte(line, '\n')
	if end < 0 {
		next = len(prog.Text)
		return
	}

	line = line[:end]
	next = ip + end + 1
	return
}

// LineNo returns the 1-based line number of the line containing offset
// ip, by counting newlines from the start of the text. This is O(ip), and
// is only done on non-sequential control transfers.
func (prog *Program) LineNo(ip int) int {
	ip = min(ip, len(prog.Text))
	return 1 + strings.Count(prog.Text[:ip], "\n")
}

// Lookup returns the entry offset of a subroutine.
func (prog *Program) Lookup(name string) (ip int, ok bool) {
	ip, ok = prog.Labels[name]
	return
}

// Lines iterates over the program lines, from offset ip.
func (prog *Program) Lines(ip int) iter.Seq2[int, string] {
	return internal.LinesFrom(prog.Text, ip)
}

// IsReturn returns true if the line is a standalone RET line.
func IsReturn(line string) bool {
	words, err := Tokenize(line)
	return err == nil && len(words) == 1 && words[0] == KEYWORD_RETURN
}
