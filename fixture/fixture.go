// Package fixture holds the conformance corpus: compiled program images plus
// their declared expected outcomes.
package fixture

import (
	_ "embed"
	"fmt"

	"github.com/sarchlab/minirv/isa"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// ExpectKind selects how a fixture's outcome is verified.
type ExpectKind int

const (
	// ExpectOutput verifies the output sink byte for byte.
	ExpectOutput ExpectKind = iota
	// ExpectRegister verifies a terminal register value after normal
	// termination.
	ExpectRegister
)

// Expectation declares a fixture's expected outcome.
type Expectation struct {
	Kind     ExpectKind
	Output   string
	Register isa.Reg
	Value    uint32
}

// Fixture is one self-contained test program plus its expected outcome. The
// harness consumes the image opaquely: instruction and data bytes plus an
// entry address.
type Fixture struct {
	Name    string
	Program []byte
	TextLen uint32
	Entry   uint32
	Expect  Expectation
}

type manifest struct {
	Fixtures []manifestEntry `yaml:"fixtures"`
}

type manifestEntry struct {
	Name     string `yaml:"name"`
	Verify   string `yaml:"verify"`
	Output   string `yaml:"output"`
	Register string `yaml:"register"`
	Value    uint32 `yaml:"value"`
}

var builders = map[string]func() (program []byte, textLen, entry uint32){
	"hello_world":       buildHelloWorld,
	"bubble_sort":       buildBubbleSort,
	"quick_sort":        buildQuickSort,
	"fib_non_recursive": buildFibNonRecursive,
	"fib_recursive":     buildFibRecursive,
}

// Corpus returns the corpus fixtures in manifest order.
func Corpus() ([]Fixture, error) {
	var m manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, fmt.Errorf("parse fixture manifest: %w", err)
	}

	fixtures := make([]Fixture, 0, len(m.Fixtures))
	for _, e := range m.Fixtures {
		build, ok := builders[e.Name]
		if !ok {
			return nil, fmt.Errorf("no builder for fixture %q", e.Name)
		}

		expect, err := e.expectation()
		if err != nil {
			return nil, fmt.Errorf("fixture %q: %w", e.Name, err)
		}

		program, textLen, entry := build()
		fixtures = append(fixtures, Fixture{
			Name:    e.Name,
			Program: program,
			TextLen: textLen,
			Entry:   entry,
			Expect:  expect,
		})
	}

	return fixtures, nil
}

// ByName returns one fixture from the corpus.
func ByName(name string) (Fixture, error) {
	fixtures, err := Corpus()
	if err != nil {
		return Fixture{}, err
	}
	for _, f := range fixtures {
		if f.Name == name {
			return f, nil
		}
	}
	return Fixture{}, fmt.Errorf("unknown fixture %q", name)
}

func (e manifestEntry) expectation() (Expectation, error) {
	switch e.Verify {
	case "output":
		return Expectation{Kind: ExpectOutput, Output: e.Output}, nil
	case "register":
		reg, ok := isa.RegByName(e.Register)
		if !ok {
			return Expectation{}, fmt.Errorf("unknown register %q", e.Register)
		}
		return Expectation{
			Kind:     ExpectRegister,
			Register: reg,
			Value:    e.Value,
		}, nil
	default:
		return Expectation{}, fmt.Errorf("unknown verify mode %q", e.Verify)
	}
}
