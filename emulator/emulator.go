// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/asmi/cpu"
)

// Emulator state. CPU + program + predefined registers.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	MaxSteps int          // Instructions to run before ErrStepLimit, or 0 for no limit.

	predefine cpu.Registers // Registers set on every Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Load assembles a program from source text.
func (emu *Emulator) Load(input io.Reader, dialect cpu.Dialect) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose, Dialect: dialect}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Predefine sets a register to the value of an integer expression before
// the program starts. Registers predefined earlier may be used in expr.
func (emu *Emulator) Predefine(register string, expr string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrPredefine{Register: register, Expr: expr, Err: err}
		}
	}()

	n, ok := cpu.RegisterIndex(register)
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	value, err := emu.evaluate(expr)
	if err != nil {
		return
	}

	emu.predefine.Put(n, value)

	if emu.Verbose {
		log.Debug("emulator: predefine", "register", register, "value", value)
	}

	return
}

// evaluate computes an integer expression with Starlark.
func (emu *Emulator) evaluate(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "predefine"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, v := range emu.predefine.All() {
		pred[name] = starlark.MakeInt64(v)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = cpu.ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = cpu.ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = cpu.ErrParseExpression(expr)
		return
	}

	return
}

// Reset the emulator state, and apply the predefined registers.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Cpu.Register = emu.predefine
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Ip)
}

// Tick performs a single tick of the emulator.
// done is set once the program has halted or run past its last instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxSteps > 0 && emu.Cpu.Ticks >= emu.MaxSteps {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Tick(emu.Program)
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Execute resets the emulator and ticks until done.
func (emu *Emulator) Execute() (err error) {
	if emu.Program == nil {
		err = ErrNoProgram
		return
	}

	emu.Reset()

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Run executes the program, returning its output. A program that stops
// anywhere but at end has no output, and Run returns an error.
func (emu *Emulator) Run() (output string, err error) {
	err = emu.Execute()
	if err != nil {
		return
	}

	if !emu.Cpu.Halted {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: cpu.ErrIpEmpty}
		return
	}

	output = emu.Cpu.Output.String()

	return
}

// Dump writes a table of the CPU state.
func (emu *Emulator) Dump(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Registers")
	tw.AppendHeader(table.Row{"Name", "Value"})
	tw.AppendRow(table.Row{"ip", emu.Cpu.Ip})
	tw.AppendRow(table.Row{"line", emu.LineNo()})
	tw.AppendRow(table.Row{"flag", emu.Cpu.Flag.String()})
	tw.AppendRow(table.Row{"stack", emu.Cpu.Stack.Depth()})
	tw.AppendRow(table.Row{"ticks", emu.Cpu.Ticks})
	tw.AppendSeparator()
	for name, value := range emu.Cpu.Register.All() {
		tw.AppendRow(table.Row{name, value})
	}
	tw.Render()
}

// Run interprets program source text in the full dialect.
func Run(source string) (output string, err error) {
	emu := NewEmulator()

	err = emu.Load(strings.NewReader(source), cpu.DIALECT_FULL)
	if err != nil {
		return
	}

	output, err = emu.Run()

	return
}

// Interpret interprets program source text. ok is false, and output empty,
// if the program did not stop at an end instruction.
func Interpret(source string) (output string, ok bool) {
	output, err := Run(source)
	if err != nil {
		return "", false
	}

	return output, true
}

// Simple runs a simple dialect program until it runs past its last
// instruction, and returns the registers it set.
func Simple(program []string) (registers map[string]int64, err error) {
	emu := NewEmulator()

	err = emu.Load(strings.NewReader(strings.Join(program, "\n")), cpu.DIALECT_SIMPLE)
	if err != nil {
		return
	}

	err = emu.Execute()
	if err != nil {
		return
	}

	registers = emu.Cpu.Register.Map()

	return
}
