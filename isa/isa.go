// Package isa defines the commonly used data structures for the RV32I subset
// that the conformance corpus executes.
package isa

// WordSize is the width of one instruction word in bytes.
const WordSize = 4

// NumRegs is the size of the register file.
const NumRegs = 32

// Reg identifies one of the 32 general-purpose registers.
type Reg uint8

// Registers with a role in the corpus calling convention. Zero always reads
// as zero. Arguments and return values travel in a0/a1, the character passed
// to an environment call travels in a1.
const (
	Zero Reg = 0
	RA   Reg = 1
	SP   Reg = 2
	T0   Reg = 5
	T1   Reg = 6
	T2   Reg = 7
	S0   Reg = 8
	S1   Reg = 9
	A0   Reg = 10
	A1   Reg = 11
	A2   Reg = 12
	A5   Reg = 15
	S2   Reg = 18
	S3   Reg = 19
	T3   Reg = 28
	T4   Reg = 29
	T5   Reg = 30
	T6   Reg = 31
)

var regNames = [NumRegs]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Name returns the ABI name of the register.
func (r Reg) Name() string {
	if int(r) >= len(regNames) {
		panic("invalid register")
	}
	return regNames[r]
}

// RegByName resolves an ABI register name, as used in fixture manifests.
func RegByName(name string) (Reg, bool) {
	for i, n := range regNames {
		if n == name {
			return Reg(i), true
		}
	}
	return 0, false
}
