package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvariantError is raised when the running IL violates one of the VM's
// structural invariants -- a programmer error in the IL source itself,
// fatal since the IL text is trusted. It is never produced by
// BASIC-level mistakes in the user's program, which are reported
// through the output stream and ERRENT instead.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string { return e.msg }

func (i *Instance) fatalf(format string, args ...interface{}) error {
	return &InvariantError{msg: errors.Errorf("vm: "+format, args...).Error()}
}

// ErrCode is one of the numbered TBX runtime errors. Code 0
// means "no error recorded".
type ErrCode int

const (
	ErrNone ErrCode = iota
	ErrLineTooLong
	ErrNumericOverflow
	ErrIllegalCharacter
	ErrUnclosedQuote
	ErrExpressionTooComplex
	ErrIllegalExpression
	ErrInvalidLineNumber
	ErrDivisionByZero
	ErrSubroutinesNestedTooDeep
	ErrRetWithoutGosub
	ErrIllegalVariable
	ErrBadCommand
	ErrUnmatchedParens
	ErrOOM
)

var errMessages = map[ErrCode]string{
	ErrLineTooLong:              "Line too long.",
	ErrNumericOverflow:          "Numeric overflow.",
	ErrIllegalCharacter:         "Illegal character.",
	ErrUnclosedQuote:            "Unclosed quote.",
	ErrExpressionTooComplex:     "Expression too complex.",
	ErrIllegalExpression:        "Illegal expression.",
	ErrInvalidLineNumber:        "Invalid line number.",
	ErrDivisionByZero:           "Division by zero.",
	ErrSubroutinesNestedTooDeep: "Subroutines nested too deep.",
	ErrRetWithoutGosub:          "RET without GOSUB.",
	ErrIllegalVariable:          "Illegal variable.",
	ErrBadCommand:               "Bad command or statement name.",
	ErrUnmatchedParens:          "Unmatched parentheses.",
	ErrOOM:                      "OOM",
}

// Message returns the canonical error string for code, or "" if code is
// not one of the numbered TBX errors.
func (c ErrCode) Message() string { return errMessages[c] }

// LastErr returns the most recently recorded TBX ERR code, for IL that
// wants to inspect it.
func (i *Instance) LastErr() ErrCode { return ErrCode(i.lastErr) }

// raiseToErrent prints and flushes msg, records code (ErrNone for errors
// with no numbered code, such as syntax errors), and transfers control
// to ERRENT -- the single recovery path shared by every BASIC-level
// runtime error.
func (i *Instance) raiseToErrent(code ErrCode, msg string) {
	i.lastErr = int(code)
	fmt.Fprintln(i.Output, msg)
	i.Output.Flush()
	i.PC = i.Image.MustLabel("ERRENT")
}
