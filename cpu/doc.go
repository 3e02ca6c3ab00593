// Package cpu implements the machine and line assembler for the lisa
// instruction language.
//
// The machine consists of 32 byte registers (REG[0]-REG[31]), a flat 64KiB
// byte memory (MEM[0]-MEM[65535]), a call stack of return cursors, and a
// cursor into the program text. There is no compiled form of a program:
// each line is tokenized and dispatched every time the cursor visits it.
//
// Three registers have reserved roles. REG[31] receives the result of CMP,
// REG[30] receives the length of the last string stored by STR, and REG[29]
// selects raw (zero) or decimal (non-zero) output for OUT and OSR.
//
// Operands may address registers and memory through indirection chains
// such as REG[MEM[REG[2]]], which are resolved from the innermost bracket
// outward. Integer literals may be written as $(...) constant expressions.
package cpu
