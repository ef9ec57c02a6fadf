package machine

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/minirv/isa"
)

// Status is the lifecycle state of one run.
type Status int

const (
	// StatusLoaded means an image is installed but execution has not begun.
	StatusLoaded Status = iota
	// StatusRunning means the machine is stepping.
	StatusRunning
	// StatusDone means the program counter left the text region.
	StatusDone
	// StatusFaulted means a machine-level fault ended the run.
	StatusFaulted
)

// Name returns the name of the status.
func (s Status) Name() string {
	switch s {
	case StatusLoaded:
		return "Loaded"
	case StatusRunning:
		return "Running"
	case StatusDone:
		return "Done"
	case StatusFaulted:
		return "Faulted"
	default:
		panic("invalid status")
	}
}

// Machine executes one program image to termination, one fetch-decode-execute
// cycle per tick. There is no resumption after a terminal state; each fixture
// gets a freshly loaded machine.
type Machine struct {
	*sim.TickingComponent

	state machineState
	emu   instEmulator
	sink  *Sink

	status    Status
	stepLimit uint64
	steps     uint64
	fault     *isa.Fault
}

// Load installs a program image and prepares the architectural state: the
// program counter at the entry point, sp at the image top, and ra at a
// sentinel outside the text region so that a return from the entry routine
// terminates the run the same way as falling off the end of text.
func (m *Machine) Load(program []byte, textLen, entry uint32) error {
	if err := m.state.Mem.Install(program, textLen); err != nil {
		return err
	}

	for i := range m.state.Registers {
		m.state.Registers[i] = 0
	}
	m.state.PC = entry
	m.state.WriteReg(isa.SP, m.state.Mem.Size())
	m.state.WriteReg(isa.RA, m.state.Mem.Size())

	m.status = StatusLoaded
	m.fault = nil
	m.steps = 0
	m.sink.buf = m.sink.buf[:0]

	Trace("Load",
		"Machine", m.Name(),
		"TextLen", textLen,
		"Entry", entry,
		"ImageSize", m.state.Mem.Size(),
	)

	return nil
}

// Run drives the machine to termination through the simulation engine.
func (m *Machine) Run() error {
	if m.status != StatusLoaded {
		panic("machine must be loaded before running")
	}
	m.status = StatusRunning
	m.TickNow()
	return m.Engine.Run()
}

// Tick executes one fetch-decode-execute cycle.
func (m *Machine) Tick() (madeProgress bool) {
	if m.status != StatusRunning {
		return false
	}

	m.step()

	return true
}

func (m *Machine) step() {
	if m.state.PC >= m.state.Mem.TextEnd() {
		m.status = StatusDone
		Trace("Terminate",
			"Machine", m.Name(),
			"PC", m.state.PC,
			"Steps", m.steps,
		)
		return
	}

	if m.steps >= m.stepLimit {
		m.fail(isa.NewRunaway())
		return
	}
	m.steps++

	word, err := m.state.Mem.ReadWord(m.state.PC)
	if err != nil {
		m.fail(err)
		return
	}

	inst, err := isa.Decode(word)
	if err != nil {
		m.fail(err)
		return
	}

	if StepTraceToggle {
		Trace("Step",
			"Machine", m.Name(),
			"PC", m.state.PC,
			"Inst", inst,
		)
	}

	if err := m.emu.RunInst(inst, &m.state); err != nil {
		m.fail(err)
	}
}

func (m *Machine) fail(err error) {
	f, ok := isa.AsFault(err)
	if !ok {
		panic("machine error is not a fault: " + err.Error())
	}
	f.PC = m.state.PC
	m.fault = f
	m.status = StatusFaulted

	Trace("Fault",
		"Machine", m.Name(),
		"Kind", f.Kind.Name(),
		"PC", f.PC,
		"Steps", m.steps,
	)
}

// Status returns the lifecycle state of the run.
func (m *Machine) Status() Status {
	return m.status
}

// Fault returns the fault that ended the run, or nil.
func (m *Machine) Fault() *isa.Fault {
	return m.fault
}

// Output returns a copy of the accumulated output sink.
func (m *Machine) Output() []byte {
	return m.sink.Bytes()
}

// Result returns the terminal value of a register.
func (m *Machine) Result(r isa.Reg) uint32 {
	return m.state.ReadReg(r)
}

// PC returns the current program counter.
func (m *Machine) PC() uint32 {
	return m.state.PC
}

// Steps returns the number of executed instructions.
func (m *Machine) Steps() uint64 {
	return m.steps
}
