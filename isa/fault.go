package isa

import (
	"errors"
	"fmt"
)

// FaultKind classifies the machine-level conditions that end a run
// abnormally.
type FaultKind int

const (
	// OutOfBounds is an access outside the memory image extent.
	OutOfBounds FaultKind = iota
	// ProtectionViolation is a write into the text region.
	ProtectionViolation
	// IllegalInstruction is a word that matches no known encoding.
	IllegalInstruction
	// Runaway means the step ceiling was exceeded before termination.
	Runaway
)

// Name returns the name of the fault kind.
func (k FaultKind) Name() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case ProtectionViolation:
		return "ProtectionViolation"
	case IllegalInstruction:
		return "IllegalInstruction"
	case Runaway:
		return "Runaway"
	default:
		panic("invalid fault kind")
	}
}

// Fault is a fatal machine-level condition. It is always surfaced to the
// conformance runner and never recovered within a run.
type Fault struct {
	Kind FaultKind
	PC   uint32 // program counter at the faulting instruction
	Addr uint32 // faulting address, for memory faults
	Word uint32 // undecodable word, for IllegalInstruction
}

func (f *Fault) Error() string {
	switch f.Kind {
	case OutOfBounds:
		return fmt.Sprintf("%s: address 0x%08x at PC 0x%08x",
			f.Kind.Name(), f.Addr, f.PC)
	case ProtectionViolation:
		return fmt.Sprintf("%s: write to text address 0x%08x at PC 0x%08x",
			f.Kind.Name(), f.Addr, f.PC)
	case IllegalInstruction:
		return fmt.Sprintf("%s: word 0x%08x at PC 0x%08x",
			f.Kind.Name(), f.Word, f.PC)
	case Runaway:
		return fmt.Sprintf("%s: step ceiling exceeded at PC 0x%08x",
			f.Kind.Name(), f.PC)
	default:
		panic("invalid fault kind")
	}
}

// NewOutOfBounds creates an OutOfBounds fault for the given address.
func NewOutOfBounds(addr uint32) *Fault {
	return &Fault{Kind: OutOfBounds, Addr: addr}
}

// NewProtectionViolation creates a ProtectionViolation fault for the given
// address.
func NewProtectionViolation(addr uint32) *Fault {
	return &Fault{Kind: ProtectionViolation, Addr: addr}
}

// NewIllegalInstruction creates an IllegalInstruction fault for the given
// word.
func NewIllegalInstruction(word uint32) *Fault {
	return &Fault{Kind: IllegalInstruction, Word: word}
}

// NewRunaway creates a Runaway fault.
func NewRunaway() *Fault {
	return &Fault{Kind: Runaway}
}

// AsFault extracts a Fault from an error chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
