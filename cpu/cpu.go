package cpu

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Cpu is the execution context of a running program.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       int             // Current instruction pointer.
	Register Registers       // Register bank.
	Stack    Stack           // Call stack.
	Flag     Flag            // Pending comparison.
	Output   strings.Builder // Accumulated msg output.
	Halted   bool            // Set by end.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 5s: %v\n", "flag", cpu.Flag)

	if ret, ok := cpu.Stack.Peek(); ok {
		text += fmt.Sprintf("% 5s: %v (%d deep)\n", "stack", ret, cpu.Stack.Depth())
	} else {
		text += fmt.Sprintf("% 5s: %v\n", "stack", "-")
	}

	for name, value := range cpu.Register.All() {
		text += fmt.Sprintf("% 5s: %v\n", name, value)
	}

	return
}

// Reset the CPU state.
// - Clears the registers, stack, and comparison flag.
// - Discards any output.
// - Zeros the tick counter.
// - Sets IP to the first instruction.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Debug("cpu: reset")
	}

	cpu.Ip = 0
	cpu.Register.Reset()
	cpu.Stack.Reset()
	cpu.Flag = FLAG_NONE
	cpu.Output.Reset()
	cpu.Halted = false
	cpu.Ticks = 0
}

// valueOf reads an operand.
func (cpu *Cpu) valueOf(arg Operand) (value int64, err error) {
	if arg.Err != nil {
		err = arg.Err
		return
	}

	if !arg.IsRegister() {
		value = arg.Value
		return
	}

	value, ok := cpu.Register.Get(arg.Register)
	if !ok {
		err = ErrRegister(arg.Word)
	}

	return
}

// target returns the resolved jump target of an instruction.
func (cpu *Cpu) target(in *Instruction) (ip int, err error) {
	if in.Target < 0 {
		err = ErrLabelMissing(in.Label)
		return
	}

	ip = in.Target

	return
}

// message formats a msg instruction.
func (cpu *Cpu) message(frags []Fragment) (text string, err error) {
	var sb strings.Builder

	for _, frag := range frags {
		if frag.Operand == nil {
			sb.WriteString(frag.Text)
			continue
		}
		var value int64
		value, err = cpu.valueOf(*frag.Operand)
		if err != nil {
			return
		}
		sb.WriteString(strconv.FormatInt(value, 10))
	}

	text = sb.String()

	return
}

// alu performs an arithmetic operation on the destination register.
// An unset destination is left unset.
func (cpu *Cpu) alu(op CodeOp, dst int, rhs int64) (err error) {
	lhs, ok := cpu.Register.Get(dst)
	if !ok {
		return
	}

	var value int64
	switch op {
	case OP_ADD:
		value = lhs + rhs
	case OP_SUB:
		value = lhs - rhs
	case OP_MUL:
		value = lhs * rhs
	case OP_DIV:
		if rhs == 0 {
			err = ErrDivideByZero
			return
		}
		if lhs == math.MinInt64 && rhs == -1 {
			err = ErrDivideRange
			return
		}
		value = lhs / rhs
	}

	cpu.Register.Put(dst, value)

	return
}

// Tick executes the instruction at IP.
//
// ErrIpEmpty is returned when IP has run off the end of the program.
// After end, the CPU is halted and Tick returns ErrHalted.
func (cpu *Cpu) Tick(prog *Program) (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Ip < 0 {
		err = ErrIpRange
		return
	}

	in, ok := prog.Fetch(cpu.Ip)
	if !ok {
		err = ErrIpEmpty
		return
	}

	if cpu.Verbose {
		log.Debug("cpu: tick", "ip", cpu.Ip, "line", in.LineNo, "op", in.Op, "text", in.Line)
	}

	cpu.Ticks++
	next := cpu.Ip + 1

	switch in.Op {
	case OP_NOP:
		// skipped
	case OP_MOV:
		var value int64
		value, err = cpu.valueOf(in.Args[0])
		if err != nil {
			return
		}
		cpu.Register.Put(in.Dst, value)
	case OP_INC:
		cpu.Register.Update(in.Dst, func(value int64) int64 { return value + 1 })
	case OP_DEC:
		cpu.Register.Update(in.Dst, func(value int64) int64 { return value - 1 })
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		var value int64
		value, err = cpu.valueOf(in.Args[0])
		if err != nil {
			return
		}
		err = cpu.alu(in.Op, in.Dst, value)
		if err != nil {
			return
		}
	case OP_JMP:
		next, err = cpu.target(in)
		if err != nil {
			return
		}
	case OP_CMP:
		var a, b int64
		a, err = cpu.valueOf(in.Args[0])
		if err != nil {
			return
		}
		b, err = cpu.valueOf(in.Args[1])
		if err != nil {
			return
		}
		cpu.Flag = Compare(a, b)
	case OP_JNE, OP_JE, OP_JGE, OP_JG, OP_JLE, OP_JL:
		flag := cpu.Flag
		if flag == FLAG_NONE {
			err = ErrFlagEmpty
			return
		}
		cpu.Flag = FLAG_NONE
		if in.Op.Taken(flag) {
			next, err = cpu.target(in)
			if err != nil {
				return
			}
		}
	case OP_CALL:
		next, err = cpu.target(in)
		if err != nil {
			return
		}
		if !cpu.Stack.Push(cpu.Ip + 1) {
			err = ErrStackFull
			return
		}
	case OP_RET:
		next, ok = cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
	case OP_MSG:
		var text string
		text, err = cpu.message(in.Message)
		if err != nil {
			return
		}
		cpu.Output.WriteString(text)
	case OP_END:
		cpu.Halted = true
		next = cpu.Ip
	case OP_JNZ:
		var x, y int64
		x, err = cpu.valueOf(in.Args[0])
		if err != nil {
			return
		}
		y, err = cpu.valueOf(in.Args[1])
		if err != nil {
			return
		}
		if x != 0 {
			next = cpu.Ip + int(y)
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	cpu.Ip = next

	return
}
