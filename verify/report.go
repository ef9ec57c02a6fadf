package verify

import (
	"fmt"
	"io"
	"strings"
)

// Report summarizes the verdicts of one conformance sweep.
type Report struct {
	Verdicts []Verdict
}

// Passed reports whether every fixture passed.
func (r *Report) Passed() bool {
	for _, v := range r.Verdicts {
		if v.Kind != Pass {
			return false
		}
	}
	return true
}

// Counts returns the number of verdicts per kind.
func (r *Report) Counts() (pass, mismatch, fault int) {
	for _, v := range r.Verdicts {
		switch v.Kind {
		case Pass:
			pass++
		case Mismatch:
			mismatch++
		case Fault:
			fault++
		}
	}
	return pass, mismatch, fault
}

// WriteReport writes a formatted report to a writer.
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "CONFORMANCE REPORT")
	fmt.Fprintln(w, separator)

	for _, v := range r.Verdicts {
		switch v.Kind {
		case Pass:
			fmt.Fprintf(w, "✓ %-20s Pass (%d steps)\n", v.Fixture, v.Steps)
		case Mismatch:
			fmt.Fprintf(w, "⚠ %-20s Mismatch (%d steps)\n", v.Fixture, v.Steps)
			fmt.Fprintln(w, dash)
			fmt.Fprintf(w, "  expected: %q\n", v.Expected)
			fmt.Fprintf(w, "  actual:   %q\n", v.Actual)
			if v.Diff != "" {
				fmt.Fprintf(w, "  diff (-expected +actual):\n%s\n", indent(v.Diff))
			}
			fmt.Fprintln(w, dash)
		case Fault:
			fmt.Fprintf(w, "⚠ %-20s Fault (%d steps)\n", v.Fixture, v.Steps)
			fmt.Fprintln(w, dash)
			fmt.Fprintf(w, "  %v\n", v.Fault)
			if v.Output != "" {
				fmt.Fprintf(w, "  output so far: %q\n", v.Output)
			}
			if v.Dump != "" {
				fmt.Fprintln(w, indent(v.Dump))
			}
			fmt.Fprintln(w, dash)
		}
	}

	pass, mismatch, fault := r.Counts()
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%d fixtures: %d pass, %d mismatch, %d fault\n",
		len(r.Verdicts), pass, mismatch, fault)
	fmt.Fprintln(w, separator)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
