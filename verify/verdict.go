// Package verify runs the conformance corpus against freshly built machines
// and reports a per-fixture verdict.
package verify

import (
	"fmt"

	"github.com/sarchlab/minirv/isa"
)

// VerdictKind is the per-fixture outcome category.
type VerdictKind int

const (
	// Pass means the run terminated normally with the expected outcome.
	Pass VerdictKind = iota
	// Mismatch means the run terminated normally but the output or result
	// register diverged from the expectation. The program ran, it just
	// computed the wrong answer.
	Mismatch
	// Fault means a machine-level condition ended the run: the program
	// crashed the machine.
	Fault
)

// Name returns the name of the verdict kind.
func (k VerdictKind) Name() string {
	switch k {
	case Pass:
		return "Pass"
	case Mismatch:
		return "Mismatch"
	case Fault:
		return "Fault"
	default:
		panic("invalid verdict kind")
	}
}

// Verdict is the outcome of one fixture run.
type Verdict struct {
	Fixture string
	Kind    VerdictKind

	// Expected and Actual describe the divergence on Mismatch.
	Expected string
	Actual   string
	// Diff is a human-readable diff of Expected and Actual.
	Diff string

	// Fault is the condition that ended the run, on Fault. Dump is the
	// rendered register table at the moment the run ended.
	Fault *isa.Fault
	Dump  string

	// Output is the accumulated sink, Steps the executed instruction
	// count; both filled for every terminated run.
	Output string
	Steps  uint64
}

func (v Verdict) String() string {
	switch v.Kind {
	case Pass:
		return fmt.Sprintf("%s: Pass", v.Fixture)
	case Mismatch:
		return fmt.Sprintf("%s: Mismatch (expected %q, actual %q)",
			v.Fixture, v.Expected, v.Actual)
	case Fault:
		return fmt.Sprintf("%s: Fault (%v)", v.Fixture, v.Fault)
	default:
		panic("invalid verdict kind")
	}
}
