package machine

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/minirv/isa"
)

const (
	defaultMemSize   = 4096
	defaultStepLimit = 1000000
)

// Builder can create new machines.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	memSize   uint32
	stepLimit uint64
	syscall   Syscall
}

// NewBuilder creates a builder with the default memory size and step
// ceiling.
func NewBuilder() Builder {
	return Builder{
		freq:      1 * sim.GHz,
		memSize:   defaultMemSize,
		stepLimit: defaultStepLimit,
	}
}

// WithEngine sets the engine that drives the machine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMemSize sets the memory image size in bytes.
func (b Builder) WithMemSize(size uint32) Builder {
	b.memSize = size
	return b
}

// WithStepLimit sets the step ceiling that guards against non-terminating
// programs.
func (b Builder) WithStepLimit(limit uint64) Builder {
	b.stepLimit = limit
	return b
}

// WithSyscallHandler replaces the default character-output handler.
func (b Builder) WithSyscallHandler(handler Syscall) Builder {
	b.syscall = handler
	return b
}

// Build creates a machine.
func (b Builder) Build(name string) *Machine {
	if b.engine == nil {
		panic("machine requires an engine")
	}
	if b.memSize%isa.WordSize != 0 {
		panic("memory size must be word aligned")
	}

	m := &Machine{
		sink:      &Sink{},
		stepLimit: b.stepLimit,
	}
	m.state = machineState{
		Registers: make([]uint32, isa.NumRegs),
		Mem:       NewImage(b.memSize),
	}

	syscall := b.syscall
	if syscall == nil {
		syscall = putCharHandler{sink: m.sink}
	}
	m.emu = instEmulator{syscall: syscall}

	m.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, m)

	return m
}
