package verify

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/minirv/fixture"
	"github.com/sarchlab/minirv/machine"
)

// Runner executes fixtures. Every run gets a fresh engine, machine, memory
// image, and output sink, so fixtures never share state and faults in one
// run cannot leak into another.
type Runner struct {
	memSize   uint32
	stepLimit uint64
}

// RunnerBuilder can create runners.
type RunnerBuilder struct {
	memSize   uint32
	stepLimit uint64
}

// NewRunnerBuilder creates a builder with default machine parameters.
func NewRunnerBuilder() RunnerBuilder {
	return RunnerBuilder{}
}

// WithMemSize sets the memory image size of the machines the runner builds.
func (b RunnerBuilder) WithMemSize(size uint32) RunnerBuilder {
	b.memSize = size
	return b
}

// WithStepLimit sets the step ceiling of the machines the runner builds.
func (b RunnerBuilder) WithStepLimit(limit uint64) RunnerBuilder {
	b.stepLimit = limit
	return b
}

// Build creates a runner.
func (b RunnerBuilder) Build() *Runner {
	return &Runner{
		memSize:   b.memSize,
		stepLimit: b.stepLimit,
	}
}

// Run executes one fixture to termination and returns the verdict. The
// returned error reports harness failures, not fixture failures; those are
// verdicts.
func (r *Runner) Run(f fixture.Fixture) (Verdict, error) {
	engine := sim.NewSerialEngine()

	builder := machine.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz)
	if r.memSize != 0 {
		builder = builder.WithMemSize(r.memSize)
	}
	if r.stepLimit != 0 {
		builder = builder.WithStepLimit(r.stepLimit)
	}
	m := builder.Build(machineName(f.Name))

	if err := m.Load(f.Program, f.TextLen, f.Entry); err != nil {
		return Verdict{}, fmt.Errorf("load fixture %q: %w", f.Name, err)
	}

	if err := m.Run(); err != nil {
		return Verdict{}, fmt.Errorf("run fixture %q: %w", f.Name, err)
	}

	v := Verdict{
		Fixture: f.Name,
		Output:  string(m.Output()),
		Steps:   m.Steps(),
	}

	if m.Status() == machine.StatusFaulted {
		v.Kind = Fault
		v.Fault = m.Fault()

		var dump bytes.Buffer
		m.DumpRegisters(&dump)
		v.Dump = dump.String()

		return v, nil
	}

	switch f.Expect.Kind {
	case fixture.ExpectOutput:
		v.Expected = f.Expect.Output
		v.Actual = v.Output
	case fixture.ExpectRegister:
		v.Expected = strconv.FormatUint(uint64(f.Expect.Value), 10)
		v.Actual = strconv.FormatUint(uint64(m.Result(f.Expect.Register)), 10)
	default:
		return Verdict{}, fmt.Errorf("fixture %q: invalid expectation", f.Name)
	}

	if v.Actual == v.Expected {
		v.Kind = Pass
	} else {
		v.Kind = Mismatch
		v.Diff = cmp.Diff(v.Expected, v.Actual)
	}

	return v, nil
}

// machineName renders a fixture name as a component name. Component name
// elements reject underscores and lowercase leading letters, so the
// underscore-separated fixture name becomes one CamelCase element.
func machineName(fixture string) string {
	var b strings.Builder
	b.WriteString("Machine")
	for _, part := range strings.Split(fixture, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// RunAll executes every fixture and collects the verdicts.
func (r *Runner) RunAll(fixtures []fixture.Fixture) ([]Verdict, error) {
	verdicts := make([]Verdict, 0, len(fixtures))
	for _, f := range fixtures {
		v, err := r.Run(f)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, nil
}
