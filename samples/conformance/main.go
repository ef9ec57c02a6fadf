// Command conformance runs the whole fixture corpus and prints the verdict
// report. The step ceiling can be raised through MINIRV_STEP_LIMIT when
// debugging a mis-decoded or non-terminating image.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/minirv/fixture"
	"github.com/sarchlab/minirv/verify"
	"github.com/tebeka/atexit"
	"github.com/xyproto/env/v2"
)

func main() {
	fixtures, err := fixture.Corpus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	runner := verify.NewRunnerBuilder().
		WithStepLimit(uint64(env.Int("MINIRV_STEP_LIMIT", 0))).
		Build()

	verdicts, err := runner.RunAll(fixtures)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	report := verify.Report{Verdicts: verdicts}
	report.WriteReport(os.Stdout)

	if !report.Passed() {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
