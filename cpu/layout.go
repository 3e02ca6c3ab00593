package cpu

const (
	REGISTER_COUNT = 32    // Size of the register file.
	MEMORY_SIZE    = 65536 // Size of the linear memory.

	REG_PRINT  = 29 // Print-mode flag consulted by OUT and OSR.
	REG_STRLEN = 30 // Length of the most recently stored string.
	REG_FLAG   = 31 // Result of the most recent CMP.

	OPERAND_LIMIT = 1024 // Maximum length of a single operand.
	WORD_LIMIT    = 32   // Maximum number of words on a line.
	STRING_LIMIT  = 255  // Maximum STR length, as recorded in REG_STRLEN.
)

// Comparison results written to REG_FLAG by CMP.
const (
	FLAG_LESS    = 0 // b > a
	FLAG_EQUAL   = 1 // b == a
	FLAG_GREATER = 2 // b < a
)

// Keywords with structural meaning to the assembler.
const (
	KEYWORD_SUBROUTINE = "SBR"
	KEYWORD_RETURN     = "RET"
)
