package cpu

import (
	"errors"

	"github.com/ezrec/asmi/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty       = errors.New(f("ip past end of program"))
	ErrIpRange       = errors.New(f("ip before start of program"))
	ErrStackEmpty    = errors.New(f("stack empty"))
	ErrStackFull     = errors.New(f("stack full"))
	ErrFlagEmpty     = errors.New(f("no comparison pending"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrDivideRange   = errors.New(f("divide overflow"))
	ErrRegisterUnset = errors.New(f("register unset"))
	ErrHalted        = errors.New(f("halted"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrRegister string

func (er ErrRegister) Error() string {
	return f("register %v unset", string(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrRegisterUnset
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

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("'%v' is not a valid expression", string(err))
}
