package cpu

import (
	"errors"
	"log"
	"strconv"
)

// OperandKind is the classification of an operand word.
type OperandKind int

const (
	OPERAND_REGISTER = OperandKind(0) // REG[...]
	OPERAND_MEMORY   = OperandKind(1) // MEM[...]
	OPERAND_CHAR     = OperandKind(2) // 'c
	OPERAND_STRING   = OperandKind(3) // "..."
	OPERAND_INT      = OperandKind(4) // 123 or $(...)
)

var operandKindName = [...]string{
	OPERAND_REGISTER: "register",
	OPERAND_MEMORY:   "memory",
	OPERAND_CHAR:     "character",
	OPERAND_STRING:   "string",
	OPERAND_INT:      "integer",
}

func (kind OperandKind) String() string {
	if kind < 0 || int(kind) >= len(operandKindName) {
		return "OperandKind(" + strconv.Itoa(int(kind)) + ")"
	}
	return operandKindName[kind]
}

// Classify returns the kind of an operand word, by its first character.
func Classify(word string) OperandKind {
	if len(word) == 0 {
		return OPERAND_INT
	}

	switch word[0] {
	case 'R':
		return OPERAND_REGISTER
	case 'M':
		return OPERAND_MEMORY
	case '\'':
		return OPERAND_CHAR
	case '"':
		return OPERAND_STRING
	default:
		return OPERAND_INT
	}
}

// Operand is a resolved operand.
type Operand struct {
	Kind  OperandKind
	Word  string // Operand text, verbatim.
	Index int    // Resolved register or memory index.
	Value int    // Value of a character or integer literal.
}

// charEscape maps the escaped character literals.
var charEscape = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'e':  '\033',
	's':  ' ',
	'0':  0,
	'\\': '\\',
}

// Resolve classifies an operand word, and resolves register and memory
// references into a concrete index using the current register and memory
// contents.
func (cpu *Cpu) Resolve(word string) (op Operand, err error) {
	defer func() {
		if err != nil {
			err = &ErrOperand{Operand: word, Err: err}
		}
	}()

	if len(word) > OPERAND_LIMIT {
		err = ErrOperandTooLong
		return
	}

	op = Operand{Kind: Classify(word), Word: word}

	switch op.Kind {
	case OPERAND_REGISTER, OPERAND_MEMORY:
		var text string
		text, err = cpu.Expressions.Expand(word)
		if err != nil {
			return
		}
		var addr *Address
		addr, err = ParseAddress(text)
		if err != nil {
			return
		}
		op.Index, err = addr.Resolve(cpu.Register[:], cpu.Memory[:])
		if err == nil && cpu.Verbose && addr.Depth() > 1 {
			log.Printf("cpu: %v -> %v[%d] (%d links)", word, addr.Kind(), op.Index, addr.Depth())
		}
	case OPERAND_CHAR:
		switch {
		case len(word) == 2:
			op.Value = int(word[1])
		case len(word) == 3 && word[1] == '\\':
			ch, ok := charEscape[word[2]]
			if !ok {
				err = ErrMalformedOperand
				return
			}
			op.Value = int(ch)
		default:
			err = ErrMalformedOperand
		}
	case OPERAND_STRING:
		// Returned verbatim.
	case OPERAND_INT:
		var text string
		text, err = cpu.Expressions.Expand(word)
		if err != nil {
			return
		}
		op.Value, err = strconv.Atoi(text)
		if err != nil || op.Value < 0 {
			err = errors.Join(ErrMalformedOperand, ErrParseNumber(text))
			return
		}
	}

	return
}

// Text returns the decoded bytes of a string literal.
func (op Operand) Text() (text string, err error) {
	if op.Kind != OPERAND_STRING {
		err = &ErrOperand{Operand: op.Word, Err: ErrTypeMismatch}
		return
	}

	text, err = strconv.Unquote(op.Word)
	if err != nil {
		err = &ErrOperand{Operand: op.Word, Err: ErrMalformedOperand}
	}
	return
}
