package cpu

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates, visible to every $(...) expression.
var sysEquate = map[string]int64{
	"REGISTER_COUNT": REGISTER_COUNT,
	"MEMORY_SIZE":    MEMORY_SIZE,
	"STACK_LIMIT":    STACK_LIMIT,
	"REG_PRINT":      REG_PRINT,
	"REG_STRLEN":     REG_STRLEN,
	"REG_FLAG":       REG_FLAG,
}

var exprPattern = regexp.MustCompile(`\$\([^\$]*\)`)

// Expressions evaluates $(...) constant expressions.
// Results are cached by expression text, as a line is re-read every time
// the cursor visits it.
type Expressions struct {
	Equate map[string]int64 // Constants visible to expressions.

	cache map[string]int64
}

// NewExpressions returns an evaluator with the system equates defined.
func NewExpressions() (ex *Expressions) {
	ex = &Expressions{
		Equate: maps.Clone(sysEquate),
	}
	return
}

// Define defines a new equate or redefines an existing equate.
func (ex *Expressions) Define(name string, value int64) {
	if ex.Equate == nil {
		ex.Equate = maps.Clone(sysEquate)
	}
	ex.Equate[name] = value
	clear(ex.cache)
}

// Eval does a $(...) evaluation of the expression text between the parens.
func (ex *Expressions) Eval(expr string) (value int64, err error) {
	value, ok := ex.cache[expr]
	if ok {
		return
	}

	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range ex.Equate {
		pred[key] = starlark.MakeInt64(val)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok || value < 0 {
		err = ErrParseExpression(expr)
		return
	}

	if ex.cache == nil {
		ex.cache = make(map[string]int64)
	}
	ex.cache[expr] = value

	return
}

// Expand replaces every $(...) span of word with its decimal value.
func (ex *Expressions) Expand(word string) (expanded string, err error) {
	expanded = exprPattern.ReplaceAllStringFunc(word, func(str string) string {
		if err != nil {
			return str
		}
		value, _err := ex.Eval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
			return str
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		err = errors.Join(ErrMalformedOperand, err)
	}
	return
}

// String lists the equates, for verbose logging.
func (ex *Expressions) String() string {
	return fmt.Sprintf("%v", ex.Equate)
}
