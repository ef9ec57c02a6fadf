package machine

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/minirv/isa"
)

func words(ws ...uint32) []byte {
	b := make([]byte, 0, len(ws)*isa.WordSize)
	for _, w := range ws {
		b = append(b, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return b
}

var _ = Describe("Machine", func() {
	var m *Machine

	BeforeEach(func() {
		m = NewBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithMemSize(256).
			Build("Machine")
	})

	It("should terminate when the program counter leaves text", func() {
		program := words(
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A0, Rs1: isa.Zero, Imm: 42}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Status()).To(Equal(StatusDone))
		Expect(m.Result(isa.A0)).To(Equal(uint32(42)))
		Expect(m.Steps()).To(Equal(uint64(1)))
		Expect(m.Fault()).To(BeNil())
	})

	It("should terminate on a return to the link sentinel", func() {
		program := words(
			isa.Encode(isa.Inst{Op: isa.JumpLinkReg, Rd: isa.Zero, Rs1: isa.RA, Imm: 0}),
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A0, Rs1: isa.Zero, Imm: 1}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Status()).To(Equal(StatusDone))
		Expect(m.PC()).To(Equal(uint32(256)))
		Expect(m.Result(isa.A0)).To(Equal(uint32(0)))
	})

	It("should collect syscall output", func() {
		program := words(
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A1, Rs1: isa.Zero, Imm: int32('h')}),
			isa.Encode(isa.Inst{Op: isa.EnvCall}),
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A1, Rs1: isa.Zero, Imm: int32('i')}),
			isa.Encode(isa.Inst{Op: isa.EnvCall}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Status()).To(Equal(StatusDone))
		Expect(string(m.Output())).To(Equal("hi"))
	})

	It("should fault on a runaway program", func() {
		m = NewBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithMemSize(256).
			WithStepLimit(16).
			Build("Machine")
		program := words(
			isa.Encode(isa.Inst{Op: isa.JumpLink, Rd: isa.Zero, Imm: 0}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Status()).To(Equal(StatusFaulted))
		Expect(m.Fault().Kind).To(Equal(isa.Runaway))
		Expect(m.Steps()).To(Equal(uint64(16)))
	})

	It("should fault on an unrecognized word", func() {
		program := words(0xffffffff)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Status()).To(Equal(StatusFaulted))
		Expect(m.Fault().Kind).To(Equal(isa.IllegalInstruction))
		Expect(m.Fault().PC).To(Equal(uint32(0)))
		Expect(m.Fault().Word).To(Equal(uint32(0xffffffff)))
	})

	It("should fault on a data access outside the image", func() {
		program := words(
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.T0, Rs1: isa.SP, Imm: 0}),
			isa.Encode(isa.Inst{Op: isa.Load, Rd: isa.A0, Rs1: isa.T0, Imm: 0}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Status()).To(Equal(StatusFaulted))
		Expect(m.Fault().Kind).To(Equal(isa.OutOfBounds))
		Expect(m.Fault().PC).To(Equal(uint32(4)))
	})

	It("should start with sp and ra at the image top", func() {
		program := words(
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A0, Rs1: isa.SP, Imm: 0}),
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A1, Rs1: isa.RA, Imm: 0}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Run()).To(Succeed())

		Expect(m.Result(isa.A0)).To(Equal(uint32(256)))
		Expect(m.Result(isa.A1)).To(Equal(uint32(256)))
	})

	It("should not log one line per executed instruction", func() {
		var buf bytes.Buffer
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
		defer slog.SetDefault(prev)

		program := words(
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.T0, Rs1: isa.T0, Imm: 1}),
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.T0, Rs1: isa.T0, Imm: 1}),
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.T0, Rs1: isa.T0, Imm: 1}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())
		Expect(m.Run()).To(Succeed())

		Expect(buf.String()).ToNot(ContainSubstring("msg=Step "))
	})

	It("should reset state on reload", func() {
		program := words(
			isa.Encode(isa.Inst{Op: isa.AddImm, Rd: isa.A1, Rs1: isa.Zero, Imm: int32('x')}),
			isa.Encode(isa.Inst{Op: isa.EnvCall}),
		)
		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())
		Expect(m.Run()).To(Succeed())
		Expect(string(m.Output())).To(Equal("x"))

		Expect(m.Load(program, uint32(len(program)), 0)).To(Succeed())

		Expect(m.Status()).To(Equal(StatusLoaded))
		Expect(m.Output()).To(BeEmpty())
		Expect(m.Steps()).To(Equal(uint64(0)))
	})
})

var _ = Describe("Builder", func() {
	It("should require an engine", func() {
		Expect(func() {
			NewBuilder().Build("Machine")
		}).To(Panic())
	})

	It("should require a word-aligned memory size", func() {
		Expect(func() {
			NewBuilder().
				WithEngine(sim.NewSerialEngine()).
				WithMemSize(1023).
				Build("Machine")
		}).To(Panic())
	})
})
