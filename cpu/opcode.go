package cpu

import (
	"fmt"
	"strconv"
)

// CodeOp is an instruction operation.
type CodeOp int

const (
	OP_NOP  = CodeOp(0)  // nop
	OP_MOV  = CodeOp(1)  // mov
	OP_INC  = CodeOp(2)  // inc
	OP_DEC  = CodeOp(3)  // dec
	OP_ADD  = CodeOp(4)  // add
	OP_SUB  = CodeOp(5)  // sub
	OP_MUL  = CodeOp(6)  // mul
	OP_DIV  = CodeOp(7)  // div
	OP_JMP  = CodeOp(8)  // jmp
	OP_CMP  = CodeOp(9)  // cmp
	OP_JNE  = CodeOp(10) // jne
	OP_JE   = CodeOp(11) // je
	OP_JGE  = CodeOp(12) // jge
	OP_JG   = CodeOp(13) // jg
	OP_JLE  = CodeOp(14) // jle
	OP_JL   = CodeOp(15) // jl
	OP_CALL = CodeOp(16) // call
	OP_RET  = CodeOp(17) // ret
	OP_MSG  = CodeOp(18) // msg
	OP_END  = CodeOp(19) // end
	OP_JNZ  = CodeOp(20) // jnz
)

var _CodeOp_name = [...]string{
	"nop", "mov", "inc", "dec", "add", "sub", "mul", "div",
	"jmp", "cmp", "jne", "je", "jge", "jg", "jle", "jl",
	"call", "ret", "msg", "end", "jnz",
}

func (op CodeOp) String() string {
	if op < 0 || int(op) >= len(_CodeOp_name) {
		return "CodeOp(" + strconv.Itoa(int(op)) + ")"
	}
	return _CodeOp_name[op]
}

// opMap maps mnemonics to operations. nop has no mnemonic.
var opMap = func() map[string]CodeOp {
	ops := make(map[string]CodeOp, len(_CodeOp_name))
	for n, name := range _CodeOp_name[1:] {
		ops[name] = CodeOp(n + 1)
	}
	return ops
}()

// Conditional reports whether the operation is a jump on the comparison flag.
func (op CodeOp) Conditional() bool {
	return op >= OP_JNE && op <= OP_JL
}

// Taken reports whether a conditional jump is taken for a comparison result.
func (op CodeOp) Taken(flag Flag) bool {
	switch op {
	case OP_JNE:
		return flag != FLAG_EQUAL
	case OP_JE:
		return flag == FLAG_EQUAL
	case OP_JGE:
		return flag == FLAG_EQUAL || flag == FLAG_GREATER
	case OP_JG:
		return flag == FLAG_GREATER
	case OP_JLE:
		return flag == FLAG_EQUAL || flag == FLAG_LESS
	case OP_JL:
		return flag == FLAG_LESS
	}
	return false
}

// Flag is the result of the last cmp, pending for the next conditional jump.
type Flag int

const (
	FLAG_NONE    = Flag(0) // -
	FLAG_LESS    = Flag(1) // <
	FLAG_EQUAL   = Flag(2) // =
	FLAG_GREATER = Flag(3) // >
)

func (flag Flag) String() string {
	switch flag {
	case FLAG_LESS:
		return "<"
	case FLAG_EQUAL:
		return "="
	case FLAG_GREATER:
		return ">"
	}
	return "-"
}

// Compare performs a three-way comparison.
func Compare(a, b int64) Flag {
	switch {
	case a < b:
		return FLAG_LESS
	case a > b:
		return FLAG_GREATER
	}
	return FLAG_EQUAL
}

// Operand is a decoded source word: a register reference or a decimal value.
type Operand struct {
	Word     string // Source text.
	Register int    // Register index, or -1 for an immediate.
	Value    int64  // Immediate value.
	Err      error  // Parse error, reported when the operand is read.
}

// ParseOperand decodes a word. A malformed number is not an error until
// the operand is evaluated.
func ParseOperand(word string) (arg Operand) {
	arg = Operand{Word: word, Register: -1}

	if n, ok := RegisterIndex(word); ok {
		arg.Register = n
		return
	}

	value, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		arg.Err = ErrParseNumber(word)
		return
	}
	arg.Value = value

	return
}

// IsRegister returns true if the operand names a register.
func (arg Operand) IsRegister() bool {
	return arg.Register >= 0
}

// Fragment is one piece of a msg instruction.
type Fragment struct {
	Text    string   // Literal text, when Operand is nil.
	Operand *Operand // Value to format.
}

// Instruction is a single decoded program line.
type Instruction struct {
	LineNo  int        // Line number in the source text.
	Line    string     // Cleaned source text.
	Words   []string   // Words of Line.
	Op      CodeOp     // Operation. Unrecognized lines are OP_NOP.
	Dst     int        // Destination register index, or -1.
	Args    []Operand  // Source operands.
	Label   string     // Jump label.
	Target  int        // Resolved jump target, or -1 when Label is undefined.
	Message []Fragment // Fragments of a msg.
}

func (in *Instruction) String() string {
	return fmt.Sprintf("%d: %v", in.LineNo, in.Line)
}
