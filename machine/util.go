package machine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/minirv/isa"
)

const (
	// StepTraceToggle turns on the one-line-per-instruction trace in the
	// run loop. Off by default; a normal corpus sweep executes hundreds of
	// instructions per fixture and the per-step lines drown the report.
	StepTraceToggle            = false
	LevelTrace      slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// DumpRegisters renders the architectural state as a table. Fault reports
// use it to show the machine at the moment the run ended.
func (m *Machine) DumpRegisters(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s  PC=0x%08x  steps=%d",
		m.Name(), m.state.PC, m.steps))
	t.AppendHeader(table.Row{
		"Reg", "Value", "Reg", "Value", "Reg", "Value", "Reg", "Value",
	})

	for row := 0; row < 8; row++ {
		r := table.Row{}
		for col := 0; col < 4; col++ {
			reg := isa.Reg(col*8 + row)
			r = append(r, reg.Name(),
				fmt.Sprintf("0x%08x", m.state.ReadReg(reg)))
		}
		t.AppendRow(r)
	}

	t.Render()
}
