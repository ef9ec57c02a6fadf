package machine

import (
	"github.com/sarchlab/minirv/isa"
)

// machineState is the architectural state of one run. It is owned by exactly
// one Machine and never shared across runs.
type machineState struct {
	PC        uint32
	Registers []uint32
	Mem       *Image
}

// ReadReg returns the current value of a register. The zero register always
// reads as zero.
func (s *machineState) ReadReg(r isa.Reg) uint32 {
	if r == isa.Zero {
		return 0
	}
	return s.Registers[r]
}

// WriteReg stores a value into a register. Writes to the zero register are
// silently discarded, which is how the architecture provides a constant-zero
// operand without special-casing every instruction.
func (s *machineState) WriteReg(r isa.Reg, v uint32) {
	if r == isa.Zero {
		return
	}
	s.Registers[r] = v
}
