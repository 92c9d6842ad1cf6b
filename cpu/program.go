package cpu

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Program is an assembled, immutable instruction list.
type Program struct {
	Instructions []Instruction
	Label        map[string]int // Map of jump labels to instruction indexes.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Fetch returns the instruction at ip.
func (prog *Program) Fetch(ip int) (in *Instruction, ok bool) {
	if ip < 0 || ip >= len(prog.Instructions) {
		return
	}

	return &prog.Instructions[ip], true
}

// LineNo returns the source line number of the instruction at ip, or 0.
func (prog *Program) LineNo(ip int) int {
	in, ok := prog.Fetch(ip)
	if !ok {
		return 0
	}

	return in.LineNo
}

// Labels iterates the jump labels in program order.
func (prog *Program) Labels() iter.Seq2[string, int] {
	labels := slices.SortedFunc(maps.Keys(prog.Label), func(a, b string) int {
		return cmp.Or(prog.Label[a]-prog.Label[b], strings.Compare(a, b))
	})

	return func(yield func(label string, ip int) bool) {
		for _, label := range labels {
			if !yield(label, prog.Label[label]) {
				return
			}
		}
	}
}
