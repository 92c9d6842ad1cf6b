package emulator

import (
	"errors"

	"github.com/ezrec/asmi/translate"
)

var f = translate.From

var (
	ErrStepLimit       = errors.New(f("step limit exceeded"))
	ErrNoProgram       = errors.New(f("no program loaded"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrPredefine indicates a register predefine that could not be evaluated.
type ErrPredefine struct {
	Register string
	Expr     string
	Err      error
}

func (err *ErrPredefine) Error() string {
	return f("predefine %v=%v %v", err.Register, err.Expr, err.Err)
}

func (err *ErrPredefine) Unwrap() error {
	return err.Err
}
