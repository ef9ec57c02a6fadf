package machine

import (
	"github.com/sarchlab/minirv/isa"
)

// RegFile is the register-file view handed to syscall handlers.
type RegFile interface {
	ReadReg(r isa.Reg) uint32
	WriteReg(r isa.Reg, v uint32)
}

// Syscall handles environment calls on behalf of the machine. The corpus
// issues a single syscall, character output; handlers for anything else are
// out of scope.
type Syscall interface {
	Handle(regs RegFile) error
}

// Sink is the append-only character output of one run. It is owned by the
// run that created it and only observed after termination.
type Sink struct {
	buf []byte
}

// Append adds one character to the sink.
func (s *Sink) Append(c byte) {
	s.buf = append(s.buf, c)
}

// Bytes returns a copy of the accumulated output.
func (s *Sink) Bytes() []byte {
	return append([]byte(nil), s.buf...)
}

func (s *Sink) String() string {
	return string(s.buf)
}

// putCharHandler implements the only syscall the corpus issues: interpret
// the low byte of a1 as a character code and append it to the sink.
type putCharHandler struct {
	sink *Sink
}

func (h putCharHandler) Handle(regs RegFile) error {
	h.sink.Append(byte(regs.ReadReg(isa.A1)))
	return nil
}
