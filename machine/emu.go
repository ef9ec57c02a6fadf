package machine

import (
	"github.com/sarchlab/minirv/isa"
)

// instEmulator implements the semantics of each operation. RunInst mutates
// the architectural state and owns all control-flow transfer; it performs no
// I/O besides dispatching environment calls to the syscall handler.
type instEmulator struct {
	syscall Syscall
}

// RunInst executes one decoded instruction and advances the program counter,
// either sequentially or to a branch, call, or return target.
func (e instEmulator) RunInst(inst isa.Inst, state *machineState) error {
	switch inst.Op {
	case isa.AddImm:
		e.runAddImm(inst, state)
	case isa.Add:
		e.runAdd(inst, state)
	case isa.Load:
		return e.runLoad(inst, state)
	case isa.Store:
		return e.runStore(inst, state)
	case isa.BranchEQ:
		e.runBranchEQ(inst, state)
	case isa.BranchGEU:
		e.runBranchGEU(inst, state)
	case isa.JumpLink:
		e.runJumpLink(inst, state)
	case isa.JumpLinkReg:
		e.runJumpLinkReg(inst, state)
	case isa.EnvCall:
		return e.runEnvCall(inst, state)
	default:
		panic("invalid opcode")
	}
	return nil
}

func (instEmulator) runAddImm(inst isa.Inst, state *machineState) {
	state.WriteReg(inst.Rd, state.ReadReg(inst.Rs1)+uint32(inst.Imm))
	state.PC += isa.WordSize
}

func (instEmulator) runAdd(inst isa.Inst, state *machineState) {
	state.WriteReg(inst.Rd, state.ReadReg(inst.Rs1)+state.ReadReg(inst.Rs2))
	state.PC += isa.WordSize
}

func (instEmulator) runLoad(inst isa.Inst, state *machineState) error {
	addr := state.ReadReg(inst.Rs1) + uint32(inst.Imm)
	v, err := state.Mem.ReadWord(addr)
	if err != nil {
		return err
	}
	state.WriteReg(inst.Rd, v)
	state.PC += isa.WordSize
	return nil
}

func (instEmulator) runStore(inst isa.Inst, state *machineState) error {
	addr := state.ReadReg(inst.Rs1) + uint32(inst.Imm)
	if err := state.Mem.WriteWord(addr, state.ReadReg(inst.Rs2)); err != nil {
		return err
	}
	state.PC += isa.WordSize
	return nil
}

// Branch targets are absolute addresses computed from the signed offset
// relative to the program counter of the branch itself.
func (instEmulator) runBranchEQ(inst isa.Inst, state *machineState) {
	if state.ReadReg(inst.Rs1) == state.ReadReg(inst.Rs2) {
		state.PC += uint32(inst.Imm)
	} else {
		state.PC += isa.WordSize
	}
}

func (instEmulator) runBranchGEU(inst isa.Inst, state *machineState) {
	if state.ReadReg(inst.Rs1) >= state.ReadReg(inst.Rs2) {
		state.PC += uint32(inst.Imm)
	} else {
		state.PC += isa.WordSize
	}
}

func (instEmulator) runJumpLink(inst isa.Inst, state *machineState) {
	state.WriteReg(inst.Rd, state.PC+isa.WordSize)
	state.PC += uint32(inst.Imm)
}

func (instEmulator) runJumpLinkReg(inst isa.Inst, state *machineState) {
	// The target is read before the link is written so that jalr with
	// Rd == Rs1 behaves correctly.
	target := (state.ReadReg(inst.Rs1) + uint32(inst.Imm)) &^ 1
	state.WriteReg(inst.Rd, state.PC+isa.WordSize)
	state.PC = target
}

func (e instEmulator) runEnvCall(_ isa.Inst, state *machineState) error {
	if err := e.syscall.Handle(state); err != nil {
		return err
	}
	state.PC += isa.WordSize
	return nil
}
