// Package cpu implements the machine and assembler for the asmi toy
// assembly language.
//
// The machine consists of an instruction pointer (IP), twenty-six signed
// 64-bit registers (a-z) that start out unset, a call stack of return
// addresses, a single pending comparison flag, and an output buffer that
// is filled by the msg instruction.
//
// The assembler decodes every cleaned line once into an Instruction and
// links jump labels before the program runs.
package cpu
