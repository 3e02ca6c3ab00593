package cpu

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/ezrec/lisa/io"
)

// Cpu is the execution context for a single program run. It exclusively
// owns the register file, memory, call stack and cursor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Ip     int // Cursor: byte offset of the next line to execute.
	LineNo int // Line number of the line at Ip.

	Register [REGISTER_COUNT]byte // Register file.
	Memory   [MEMORY_SIZE]byte    // Linear memory.
	Stack    Stack                // Call stack of return cursors.

	Console     io.Channel   // GET, OUT and OSR channel.
	Loader      io.Loader    // LOD file collaborator.
	Expressions *Expressions // $(...) evaluator.

	Ticks int // Lines dispatched since reset.
}

// NewCpu creates a new CPU for a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program:     prog,
		Expressions: NewExpressions(),
	}

	cpu.Reset()

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("   ip: %04x (line %d)\n", cpu.Ip, cpu.LineNo)
	for n := 0; n < REGISTER_COUNT; n += 8 {
		text += fmt.Sprintf("r%02d-%02d: % x\n", n, n+7, cpu.Register[n:n+8])
	}
	val, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("stack: %04x (depth %d)\n", val, cpu.Stack.Depth())
	} else {
		text += "stack: ----\n"
	}

	return
}

// Reset the CPU state.
// - Clears the registers, memory and stack.
// - Rewinds the console.
// - Sets the cursor to the start of the program.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Stack.Reset()
	cpu.Ticks = 0

	if cpu.Console != nil {
		cpu.Console.Rewind()
	}

	if cpu.Expressions == nil {
		cpu.Expressions = NewExpressions()
	}

	cpu.Ip = 0
	cpu.LineNo = 1
}

// Done returns true when the cursor has reached the end of the program.
func (cpu *Cpu) Done() bool {
	return cpu.Program == nil || cpu.Ip >= len(cpu.Program.Text)
}

// jump moves the cursor non-sequentially, and recomputes the line counter.
func (cpu *Cpu) jump(ip int) {
	cpu.Ip = ip
	cpu.LineNo = cpu.Program.LineNo(ip)
}

// Tick fetches, tokenizes and executes the line at the cursor.
// Returns ErrIpEmpty once the cursor has reached the end of the program.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Done() {
		err = ErrIpEmpty
		return
	}

	line, next := cpu.Program.Line(cpu.Ip)
	if cpu.Verbose {
		log.Printf("%04x: %3d: %v", cpu.Ip, cpu.LineNo, line)
	}

	cpu.Ip = next
	cpu.LineNo++
	cpu.Ticks++

	words, err := Tokenize(line)
	if err != nil {
		return
	}

	if len(words) == 0 {
		return
	}

	err = cpu.Execute(words)

	return
}

// Execute executes a single tokenized instruction line.
func (cpu *Cpu) Execute(words []string) (err error) {
	op, ok := LookupOpcode(words[0])
	if !ok {
		err = errors.Join(ErrUnknownOpcode, ErrOpcodeName(words[0]))
		return
	}

	args := words[1:]
	if len(args) != op.Arity() {
		err = errors.Join(ErrOperandCount, ErrOpcodeName(op.String()))
		return
	}

	switch op {
	case OP_SET:
		err = cpu.doSet(args[0], args[1])
	case OP_OUT:
		err = cpu.doOut(args[0])
	case OP_GET:
		err = cpu.doGet(args[0])
	case OP_CMP:
		err = cpu.doCmp(args[0], args[1])
	case OP_JSR:
		err = cpu.doCall(args[0])
	case OP_RET:
		err = cpu.doReturn()
	case OP_SBR:
		cpu.doSkipBody()
	case OP_SKP:
		cpu.doSkip()
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		err = cpu.doAlu(op, args[0], args[1])
	case OP_INC, OP_DEC:
		err = cpu.doStep(op, args[0])
	case OP_STR:
		err = cpu.doStore(args[0], args[1])
	case OP_OSR:
		err = cpu.doOutputString(args[0])
	case OP_LOD:
		err = cpu.doLoad(args[0], args[1])
	default:
		err = errors.Join(ErrUnknownOpcode, ErrOpcodeName(words[0]))
	}

	if cpu.Verbose && err == nil && op.Control() {
		log.Printf("cpu: %v: continue at line %d (depth %d)", op, cpu.LineNo, cpu.Stack.Depth())
	}

	return
}

// resolve resolves all operands before any of them is used.
func (cpu *Cpu) resolve(words ...string) (ops []Operand, err error) {
	ops = make([]Operand, len(words))
	for n, word := range words {
		ops[n], err = cpu.Resolve(word)
		if err != nil {
			return
		}
	}
	return
}

// expect checks an operand is one of the allowed kinds.
func expect(op Operand, kinds ...OperandKind) (err error) {
	for _, kind := range kinds {
		if op.Kind == kind {
			return
		}
	}

	return &ErrOperand{Operand: op.Word, Err: ErrTypeMismatch}
}

// load returns the byte value of a register, memory or literal operand.
func (cpu *Cpu) load(op Operand) (value byte, err error) {
	switch op.Kind {
	case OPERAND_REGISTER:
		value = cpu.Register[op.Index]
	case OPERAND_MEMORY:
		value = cpu.Memory[op.Index]
	case OPERAND_CHAR, OPERAND_INT:
		if op.Value > 0xff {
			err = &ErrOperand{Operand: op.Word, Err: errors.Join(ErrMalformedOperand, ErrParseNumber(op.Word))}
			return
		}
		value = byte(op.Value)
	default:
		err = &ErrOperand{Operand: op.Word, Err: ErrTypeMismatch}
	}
	return
}

// address returns the memory address named by a register's value or an
// integer literal.
func (cpu *Cpu) address(op Operand) (addr int, err error) {
	switch op.Kind {
	case OPERAND_REGISTER:
		addr = int(cpu.Register[op.Index])
	case OPERAND_INT:
		addr = op.Value
	default:
		err = &ErrOperand{Operand: op.Word, Err: ErrTypeMismatch}
		return
	}

	if addr >= MEMORY_SIZE {
		err = &ErrOperand{Operand: op.Word, Err: errors.Join(ErrAddressOutOfRange, ErrAddress{Space: "MEM", Index: addr})}
	}
	return
}

// emit writes a byte to the console, raw or as decimal text depending on
// the print-mode register.
func (cpu *Cpu) emit(value byte) (err error) {
	if cpu.Console == nil {
		err = io.ErrChannelClosed
		return
	}

	if cpu.Register[REG_PRINT] == 0 {
		return cpu.Console.Send(value)
	}

	for _, digit := range strconv.AppendUint(nil, uint64(value), 10) {
		err = cpu.Console.Send(digit)
		if err != nil {
			return
		}
	}
	return cpu.Console.Send('\n')
}

// doSet copies a byte value into a register or memory cell.
func (cpu *Cpu) doSet(dst, src string) (err error) {
	ops, err := cpu.resolve(dst, src)
	if err != nil {
		return
	}

	err = expect(ops[0], OPERAND_REGISTER, OPERAND_MEMORY)
	if err != nil {
		return
	}

	value, err := cpu.load(ops[1])
	if err != nil {
		return
	}

	if ops[0].Kind == OPERAND_REGISTER {
		cpu.Register[ops[0].Index] = value
	} else {
		cpu.Memory[ops[0].Index] = value
	}

	return
}

// doOut emits a register.
func (cpu *Cpu) doOut(src string) (err error) {
	ops, err := cpu.resolve(src)
	if err != nil {
		return
	}

	err = expect(ops[0], OPERAND_REGISTER)
	if err != nil {
		return
	}

	return cpu.emit(cpu.Register[ops[0].Index])
}

// doGet reads one byte of input into a register.
// End of input reads as zero. A failed read leaves the register unchanged.
func (cpu *Cpu) doGet(dst string) (err error) {
	ops, err := cpu.resolve(dst)
	if err != nil {
		return
	}

	err = expect(ops[0], OPERAND_REGISTER)
	if err != nil {
		return
	}

	var value byte
	if cpu.Console != nil {
		value, _, err = cpu.Console.Receive()
		if err != nil {
			return
		}
	}
	cpu.Register[ops[0].Index] = value

	return
}

// doCmp sets REG_FLAG to FLAG_EQUAL if b == a, FLAG_GREATER if b < a,
// and FLAG_LESS otherwise.
func (cpu *Cpu) doCmp(a_word, b_word string) (err error) {
	ops, err := cpu.resolve(a_word, b_word)
	if err != nil {
		return
	}

	for _, op := range ops {
		err = expect(op, OPERAND_REGISTER)
		if err != nil {
			return
		}
	}

	a := cpu.Register[ops[0].Index]
	b := cpu.Register[ops[1].Index]
	switch {
	case b == a:
		cpu.Register[REG_FLAG] = FLAG_EQUAL
	case b < a:
		cpu.Register[REG_FLAG] = FLAG_GREATER
	default:
		cpu.Register[REG_FLAG] = FLAG_LESS
	}

	return
}

// doCall pushes the return cursor, and jumps to a subroutine entry.
func (cpu *Cpu) doCall(name string) (err error) {
	entry, ok := cpu.Program.Lookup(name)
	if !ok {
		err = errors.Join(ErrUnknownSubroutine, ErrSubroutineName(name))
		return
	}

	if cpu.Stack.Full() {
		err = ErrStackOverflow
		return
	}

	cpu.Stack.Push(cpu.Ip)
	cpu.jump(entry)

	return
}

// doReturn pops a return cursor, and jumps to it.
func (cpu *Cpu) doReturn() (err error) {
	ip, ok := cpu.Stack.Pop()
	if !ok {
		err = ErrStackUnderflow
		return
	}

	cpu.jump(ip)

	return
}

// doSkipBody skips over a subroutine body reached by straight-line
// execution, resuming after the next standalone RET line.
func (cpu *Cpu) doSkipBody() {
	ip := len(cpu.Program.Text)
	for offset, line := range cpu.Program.Lines(cpu.Ip) {
		if IsReturn(line) {
			_, ip = cpu.Program.Line(offset)
			break
		}
	}

	cpu.jump(ip)
}

// doSkip skips the next line when the last comparison was FLAG_LESS.
func (cpu *Cpu) doSkip() {
	if cpu.Register[REG_FLAG] != FLAG_LESS {
		return
	}

	_, next := cpu.Program.Line(cpu.Ip)
	cpu.jump(next)
}

// doAlu performs 8-bit wraparound register arithmetic.
func (cpu *Cpu) doAlu(op Opcode, dst, src string) (err error) {
	ops, err := cpu.resolve(dst, src)
	if err != nil {
		return
	}

	for _, operand := range ops {
		err = expect(operand, OPERAND_REGISTER)
		if err != nil {
			return
		}
	}

	input := cpu.Register[ops[0].Index]
	value := cpu.Register[ops[1].Index]

	var output byte
	switch op {
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_MUL:
		output = input * value
	case OP_DIV:
		if value == 0 {
			err = &ErrOperand{Operand: src, Err: ErrDivideByZero}
			return
		}
		output = input / value
	}

	cpu.Register[ops[0].Index] = output

	return
}

// doStep increments or decrements a register, with 8-bit wraparound.
func (cpu *Cpu) doStep(op Opcode, dst string) (err error) {
	ops, err := cpu.resolve(dst)
	if err != nil {
		return
	}

	err = expect(ops[0], OPERAND_REGISTER)
	if err != nil {
		return
	}

	if op == OP_INC {
		cpu.Register[ops[0].Index]++
	} else {
		cpu.Register[ops[0].Index]--
	}

	return
}

// put copies data, and a terminating zero, into memory at addr.
func (cpu *Cpu) put(addr int, data []byte) (err error) {
	if addr+len(data)+1 > MEMORY_SIZE {
		err = errors.Join(ErrAddressOutOfRange, ErrAddress{Space: "MEM", Index: addr + len(data)})
		return
	}

	copy(cpu.Memory[addr:], data)
	cpu.Memory[addr+len(data)] = 0

	return
}

// doStore stores a string literal, and records its length in REG_STRLEN.
// Strings longer than STRING_LIMIT are rejected without being stored.
func (cpu *Cpu) doStore(pos, text string) (err error) {
	ops, err := cpu.resolve(pos, text)
	if err != nil {
		return
	}

	addr, err := cpu.address(ops[0])
	if err != nil {
		return
	}

	str, err := ops[1].Text()
	if err != nil {
		return
	}

	if len(str) > STRING_LIMIT {
		err = &ErrOperand{Operand: text, Err: ErrOperandTooLong}
		return
	}

	err = cpu.put(addr, []byte(str))
	if err != nil {
		return
	}

	cpu.Register[REG_STRLEN] = byte(len(str))

	return
}

// doOutputString emits a string literal, or a zero-terminated string from
// memory.
func (cpu *Cpu) doOutputString(src string) (err error) {
	ops, err := cpu.resolve(src)
	if err != nil {
		return
	}

	if ops[0].Kind == OPERAND_STRING {
		var str string
		str, err = ops[0].Text()
		if err != nil {
			return
		}
		for n := range len(str) {
			err = cpu.emit(str[n])
			if err != nil {
				return
			}
		}
		return
	}

	addr, err := cpu.address(ops[0])
	if err != nil {
		return
	}

	for ; addr < MEMORY_SIZE && cpu.Memory[addr] != 0; addr++ {
		err = cpu.emit(cpu.Memory[addr])
		if err != nil {
			return
		}
	}

	return
}

// doLoad copies the contents of a file, and a terminating zero, into
// memory.
func (cpu *Cpu) doLoad(pos, path string) (err error) {
	ops, err := cpu.resolve(pos, path)
	if err != nil {
		return
	}

	addr, err := cpu.address(ops[0])
	if err != nil {
		return
	}

	name, err := ops[1].Text()
	if err != nil {
		return
	}

	if cpu.Loader == nil {
		err = &io.ErrFile{Path: name, Err: io.ErrFileUnreadable}
		return
	}

	data, err := cpu.Loader.Load(name)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: load %v (%d bytes) at %04x", name, len(data), addr)
	}

	return cpu.put(addr, data)
}
