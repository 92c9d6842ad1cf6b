package cpu

import (
	"iter"
)

const REGISTER_COUNT = 26 // Registers a through z.

// Registers is the register file. A register is unset until first written.
type Registers struct {
	Value [REGISTER_COUNT]int64
	Valid [REGISTER_COUNT]bool
}

// RegisterIndex returns the index of a single lowercase letter register name.
func RegisterIndex(word string) (n int, ok bool) {
	if len(word) != 1 || word[0] < 'a' || word[0] > 'z' {
		return
	}

	return int(word[0] - 'a'), true
}

// RegisterName returns the name of a register index.
func RegisterName(n int) string {
	return string(rune('a' + n))
}

// Get returns a register value, and false if the register is unset.
func (r *Registers) Get(n int) (value int64, ok bool) {
	if !r.Valid[n] {
		return
	}

	return r.Value[n], true
}

// Put sets a register.
func (r *Registers) Put(n int, value int64) {
	r.Value[n] = value
	r.Valid[n] = true
}

// Update replaces a set register with fn of its value. Unset registers
// are left alone, and false is returned.
func (r *Registers) Update(n int, fn func(value int64) int64) (ok bool) {
	if !r.Valid[n] {
		return
	}

	r.Value[n] = fn(r.Value[n])
	return true
}

func (r *Registers) Reset() {
	clear(r.Value[:])
	clear(r.Valid[:])
}

// All iterates the set registers by name, in alphabetical order.
func (r *Registers) All() iter.Seq2[string, int64] {
	return func(yield func(name string, value int64) bool) {
		for n, valid := range r.Valid {
			if !valid {
				continue
			}
			if !yield(RegisterName(n), r.Value[n]) {
				return
			}
		}
	}
}

// Map returns the set registers by name.
func (r *Registers) Map() (regs map[string]int64) {
	regs = make(map[string]int64)
	for name, value := range r.All() {
		regs[name] = value
	}

	return
}
