package cpu

// Opcode selects the semantics of an instruction line.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_SET = Opcode(0)  // SET
	OP_OUT = Opcode(1)  // OUT
	OP_GET = Opcode(2)  // GET
	OP_CMP = Opcode(3)  // CMP
	OP_JSR = Opcode(4)  // JSR
	OP_RET = Opcode(5)  // RET
	OP_SBR = Opcode(6)  // SBR
	OP_SKP = Opcode(7)  // SKP
	OP_ADD = Opcode(8)  // ADD
	OP_SUB = Opcode(9)  // SUB
	OP_MUL = Opcode(10) // MUL
	OP_DIV = Opcode(11) // DIV
	OP_INC = Opcode(12) // INC
	OP_DEC = Opcode(13) // DEC
	OP_STR = Opcode(14) // STR
	OP_OSR = Opcode(15) // OSR
	OP_LOD = Opcode(16) // LOD
)

// opcodeMap maps opcode names.
var opcodeMap = map[string]Opcode{
	"SET": OP_SET,
	"OUT": OP_OUT,
	"GET": OP_GET,
	"CMP": OP_CMP,
	"JSR": OP_JSR,
	"RET": OP_RET,
	"SBR": OP_SBR,
	"SKP": OP_SKP,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"MUL": OP_MUL,
	"DIV": OP_DIV,
	"INC": OP_INC,
	"DEC": OP_DEC,
	"STR": OP_STR,
	"OSR": OP_OSR,
	"LOD": OP_LOD,
}

// opcodeArity is the number of operands each opcode takes.
var opcodeArity = [...]int{
	OP_SET: 2,
	OP_OUT: 1,
	OP_GET: 1,
	OP_CMP: 2,
	OP_JSR: 1,
	OP_RET: 0,
	OP_SBR: 1,
	OP_SKP: 0,
	OP_ADD: 2,
	OP_SUB: 2,
	OP_MUL: 2,
	OP_DIV: 2,
	OP_INC: 1,
	OP_DEC: 1,
	OP_STR: 2,
	OP_OSR: 1,
	OP_LOD: 2,
}

// LookupOpcode returns the opcode for an opcode word.
func LookupOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[word]
	return
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	return opcodeArity[op]
}

// Control returns true if the opcode transfers control non-sequentially.
func (op Opcode) Control() bool {
	switch op {
	case OP_JSR, OP_RET, OP_SBR, OP_SKP:
		return true
	}
	return false
}
