package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		text    string
		offsets []int
		lines   []string
	}){
		{"empty", "", nil, nil},
		{"single", "RET\n", []int{0}, []string{"RET"}},
		{"blank", "\n\n", []int{0, 1}, []string{"", ""}},
		{"fragment", "INC REG[0]\nOUT", []int{0, 11}, []string{"INC REG[0]", "OUT"}},
	}

	for _, entry := range table {
		var offsets []int
		var lines []string
		for offset, line := range Lines(entry.text) {
			offsets = append(offsets, offset)
			lines = append(lines, line)
		}
		assert.Equal(entry.offsets, offsets, entry.name)
		assert.Equal(entry.lines, lines, entry.name)
	}
}

func TestLinesFrom_Stop(t *testing.T) {
	assert := assert.New(t)

	text := "A\nB\nC\n"

	var lines []string
	for _, line := range LinesFrom(text, 2) {
		lines = append(lines, line)
		if line == "B" {
			break
		}
	}

	assert.Equal([]string{"B"}, lines)
}
