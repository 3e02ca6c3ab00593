package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		word    string
		op      Opcode
		arity   int
		control bool
	}{
		{"SET", OP_SET, 2, false},
		{"OUT", OP_OUT, 1, false},
		{"GET", OP_GET, 1, false},
		{"CMP", OP_CMP, 2, false},
		{"JSR", OP_JSR, 1, true},
		{"RET", OP_RET, 0, true},
		{"SBR", OP_SBR, 1, true},
		{"SKP", OP_SKP, 0, true},
		{"ADD", OP_ADD, 2, false},
		{"SUB", OP_SUB, 2, false},
		{"MUL", OP_MUL, 2, false},
		{"DIV", OP_DIV, 2, false},
		{"INC", OP_INC, 1, false},
		{"DEC", OP_DEC, 1, false},
		{"STR", OP_STR, 2, false},
		{"OSR", OP_OSR, 1, false},
		{"LOD", OP_LOD, 2, false},
	}

	for _, entry := range table {
		op, ok := LookupOpcode(entry.word)
		assert.True(ok, entry.word)
		assert.Equal(entry.op, op, entry.word)
		assert.Equal(entry.word, op.String())
		assert.Equal(entry.arity, op.Arity(), entry.word)
		assert.Equal(entry.control, op.Control(), entry.word)
	}

	for _, word := range []string{"set", "NOP", "", "SETX"} {
		_, ok := LookupOpcode(word)
		assert.False(ok, word)
	}
}
