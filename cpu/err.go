package cpu

import (
	"errors"

	"github.com/ezrec/lisa/io"
	"github.com/ezrec/lisa/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrMalformedOperand  = errors.New(f("malformed operand"))
	ErrAddressOutOfRange = errors.New(f("address out of range"))
	ErrTypeMismatch      = errors.New(f("operand type mismatch"))
	ErrOperandCount      = errors.New(f("wrong number of operands"))
	ErrOperandTooLong    = errors.New(f("operand too long"))

	// Instruction errors
	ErrUnknownOpcode = errors.New(f("unknown opcode"))
	ErrDivideByZero  = errors.New(f("divide by zero"))

	// Cpu errors
	ErrIpEmpty           = errors.New(f("ip empty"))
	ErrStackOverflow     = errors.New(f("stack overflow"))
	ErrStackUnderflow    = errors.New(f("return with empty stack"))
	ErrUnknownSubroutine = errors.New(f("unknown subroutine"))

	// Assembler errors
	ErrDuplicateSubroutine    = errors.New(f("subroutine duplicated"))
	ErrSubroutineSyntax       = errors.New(f("colon used without a subroutine"))
	ErrSubroutineUnterminated = errors.New(f("subroutine without RET"))
	ErrMissingTrailingNewline = errors.New(f("program must end with a newline"))
)

// fatal lists the error categories that stop execution.
var fatal = []error{
	ErrStackOverflow,
	ErrStackUnderflow,
	ErrUnknownSubroutine,
	ErrDuplicateSubroutine,
	ErrSubroutineSyntax,
	ErrSubroutineUnterminated,
	ErrMissingTrailingNewline,
	io.ErrFileNotFound,
	io.ErrFileUnreadable,
}

// IsFatal returns true if err must terminate the program.
// All other errors are reported, and the offending instruction is skipped.
func IsFatal(err error) bool {
	for _, target := range fatal {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

type ErrSubroutineName string

func (es ErrSubroutineName) Error() string {
	return f("subroutine '%v'", string(es))
}

type ErrOpcodeName string

func (eo ErrOpcodeName) Error() string {
	return f("'%v' is not an opcode", string(eo))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrOperand identifies the operand text an error was raised for.
type ErrOperand struct {
	Operand string
	Err     error
}

func (err *ErrOperand) Error() string {
	return f("operand '%v' %v", err.Operand, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrAddress is an index outside of its address space.
type ErrAddress struct {
	Space string
	Index int
}

func (err ErrAddress) Error() string {
	return f("%v[%d] out of range", err.Space, err.Index)
}
