// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

const MAX_LINE = 1 << 20 // Longest accepted source line.

// Dialect selects the instruction set accepted by the assembler.
type Dialect int

const (
	// DIALECT_FULL is the complete instruction set. Lines that do not
	// decode are kept as no-ops.
	DIALECT_FULL = Dialect(0)
	// DIALECT_SIMPLE accepts only mov, inc, dec and relative jnz, and
	// rejects anything else.
	DIALECT_SIMPLE = Dialect(1)
)

var labelRe = regexp.MustCompile(`^[A-Za-z0-9_]+:$`)

// Assembler is a two pass assembler: lines are decoded as they are read,
// then jump labels are linked.
type Assembler struct {
	Verbose     bool          // If set, verbosely logs the assembler actions.
	Dialect     Dialect       // Instruction set to accept.
	Instruction []Instruction // List of decoded instructions.

	Label map[string]int // Map of jump labels to instruction indexes.
}

// isMessage matches a msg line by prefix, so its commas survive cleaning.
func isMessage(line string) bool {
	return strings.HasPrefix(line, "msg")
}

// Clean normalizes one line of program text. Surrounding whitespace and
// trailing comments are removed, and commas are dropped from every line
// but msg lines. ok is false for lines with nothing left.
func Clean(text string) (line string, ok bool) {
	line = strings.TrimSpace(text)
	if len(line) == 0 || line[0] == ';' {
		return "", false
	}

	if isMessage(line) {
		line = cutMessageComment(line)
	} else {
		line, _, _ = strings.Cut(line, ";")
		line = strings.ReplaceAll(line, ",", " ")
	}

	line = strings.TrimSpace(line)
	ok = len(line) != 0

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, MAX_LINE)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Instruction = asm.Instruction[:0]
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		var ok bool
		line, ok = Clean(text)
		if !ok {
			continue
		}

		if asm.Verbose {
			log.Debug("asm", "line", lineno, "text", line)
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels. Missing labels are left for the
	// cpu to report, should the jump ever execute.
	for n := range asm.Instruction {
		in := &asm.Instruction[n]
		if len(in.Label) == 0 {
			continue
		}
		ip, ok := asm.Label[in.Label]
		if !ok {
			if asm.Verbose {
				log.Debug("asm: unresolved", "line", in.LineNo, "label", in.Label)
			}
			continue
		}
		in.Target = ip
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instruction),
		Label:        maps.Clone(asm.Label),
	}

	return
}

// parseLine records a label, and decodes a cleaned line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	if asm.Dialect == DIALECT_FULL && labelRe.MatchString(line) {
		label := line[:len(line)-1]
		if asm.Verbose {
			if ip, ok := asm.Label[label]; ok {
				log.Debug("asm: label redefined", "line", lineno, "label", label, "was", ip)
			}
		}
		// The label line itself is a no-op; jumps land after it.
		// A redefined label takes the later position.
		asm.Label[label] = len(asm.Instruction) + 1
	}

	words := strings.Fields(line)

	in, err := asm.decode(line, words)
	if err != nil {
		return
	}

	in.LineNo = lineno
	in.Line = line
	in.Words = words
	asm.Instruction = append(asm.Instruction, in)

	return
}

// decode evaluates the words of a line into an Instruction.
func (asm *Assembler) decode(line string, words []string) (in Instruction, err error) {
	in = Instruction{Op: OP_NOP, Dst: -1, Target: -1}

	op, ok := opMap[words[0]]
	switch asm.Dialect {
	case DIALECT_SIMPLE:
		switch op {
		case OP_MOV, OP_INC, OP_DEC, OP_JNZ:
		default:
			ok = false
		}
	default:
		if op == OP_JNZ {
			ok = false
		}
	}

	defer func() {
		if err == nil && !ok && asm.Dialect == DIALECT_SIMPLE {
			err = ErrInstructionInvalid
		}
	}()

	if !ok {
		return
	}

	args := words[1:]

	// Shape mismatches leave ok false, and the line decodes to a no-op.
	ok = false
	switch op {
	case OP_MOV, OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		if len(args) != 2 {
			return
		}
		in.Dst, ok = RegisterIndex(args[0])
		if !ok {
			in.Dst = -1
			return
		}
		in.Args = []Operand{ParseOperand(args[1])}
	case OP_INC, OP_DEC:
		if len(args) != 1 {
			return
		}
		in.Dst, ok = RegisterIndex(args[0])
		if !ok {
			in.Dst = -1
			return
		}
	case OP_CMP, OP_JNZ:
		if len(args) != 2 {
			return
		}
		in.Args = []Operand{ParseOperand(args[0]), ParseOperand(args[1])}
		ok = true
	case OP_JMP, OP_JNE, OP_JE, OP_JGE, OP_JG, OP_JLE, OP_JL, OP_CALL:
		if len(args) != 1 {
			return
		}
		in.Label = args[0]
		ok = true
	case OP_RET, OP_END:
		if len(args) != 0 {
			return
		}
		ok = true
	case OP_MSG:
		_, rest, _ := strings.Cut(line, "msg")
		in.Message = ParseMessage(rest)
		ok = true
	}

	if ok {
		in.Op = op
	}

	return
}
