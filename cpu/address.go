package cpu

import (
	"errors"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Address is a register or memory reference, such as REG[MEM[REG[2]]].
type Address struct {
	Space string `@Space "["`
	Index *Index `@@ "]"`
}

// Index is the bracketed content of an Address: either a literal
// non-negative integer, or a nested Address whose byte value is the index.
type Index struct {
	Literal *string  `  @Int`
	Address *Address `| @@`
}

var addressLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Space", Pattern: `REG|MEM`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[\[\]]`},
})

var addressParser = participle.MustBuild[Address](
	participle.Lexer(addressLexer),
)

// ParseAddress parses the text of a register or memory reference.
func ParseAddress(text string) (addr *Address, err error) {
	addr, err = addressParser.ParseString("", text)
	if err != nil {
		err = errors.Join(ErrMalformedOperand, err)
		addr = nil
	}
	return
}

// Kind returns the operand kind of the address space.
func (addr *Address) Kind() OperandKind {
	if addr.Space == "REG" {
		return OPERAND_REGISTER
	}
	return OPERAND_MEMORY
}

// Limit returns the number of cells in the address space.
func (addr *Address) Limit() int {
	if addr.Space == "REG" {
		return REGISTER_COUNT
	}
	return MEMORY_SIZE
}

// Depth returns the number of links in the indirection chain.
func (addr *Address) Depth() (depth int) {
	for link := addr; link != nil; link = link.Index.Address {
		depth++
	}
	return
}

// Resolve evaluates the indirection chain, from the innermost bracket
// outward, and returns the index into the address space.
func (addr *Address) Resolve(register []byte, memory []byte) (index int, err error) {
	var value int
	switch {
	case addr.Index.Literal != nil:
		value, err = strconv.Atoi(*addr.Index.Literal)
		if err != nil {
			err = errors.Join(ErrMalformedOperand, ErrParseNumber(*addr.Index.Literal))
			return
		}
	case addr.Index.Address != nil:
		inner := addr.Index.Address
		var at int
		at, err = inner.Resolve(register, memory)
		if err != nil {
			return
		}
		if inner.Kind() == OPERAND_REGISTER {
			value = int(register[at])
		} else {
			value = int(memory[at])
		}
	default:
		err = ErrMalformedOperand
		return
	}

	if value >= addr.Limit() {
		err = errors.Join(ErrAddressOutOfRange, ErrAddress{Space: addr.Space, Index: value})
		return
	}

	index = value
	return
}
