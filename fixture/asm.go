package fixture

import (
	"fmt"

	"github.com/sarchlab/minirv/isa"
)

// asm is a small two-pass assembler with label backpatching. The corpus
// images are built with it: text words first, data words right after, both
// installed at address zero.
type asm struct {
	insts      []isa.Inst
	fixups     []fixup
	labels     map[string]int
	data       []uint32
	dataLabels map[string]int
}

type fixupKind int

const (
	fixRel fixupKind = iota // PC-relative offset to a text label
	fixAbs                  // absolute address of a data label
)

type fixup struct {
	at    int
	label string
	kind  fixupKind
}

func newAsm() *asm {
	return &asm{
		labels:     map[string]int{},
		dataLabels: map[string]int{},
	}
}

func (a *asm) label(name string) {
	if _, ok := a.labels[name]; ok {
		panic(fmt.Sprintf("duplicate label %q", name))
	}
	a.labels[name] = len(a.insts)
}

func (a *asm) emit(i isa.Inst) {
	a.insts = append(a.insts, i)
}

func (a *asm) refer(label string, kind fixupKind) {
	a.fixups = append(a.fixups, fixup{at: len(a.insts), label: label, kind: kind})
}

func (a *asm) addi(rd, rs1 isa.Reg, imm int32) {
	a.emit(isa.Inst{Op: isa.AddImm, Rd: rd, Rs1: rs1, Imm: imm})
}

func (a *asm) add(rd, rs1, rs2 isa.Reg) {
	a.emit(isa.Inst{Op: isa.Add, Rd: rd, Rs1: rs1, Rs2: rs2})
}

func (a *asm) lw(rd isa.Reg, imm int32, rs1 isa.Reg) {
	a.emit(isa.Inst{Op: isa.Load, Rd: rd, Rs1: rs1, Imm: imm})
}

func (a *asm) sw(rs2 isa.Reg, imm int32, rs1 isa.Reg) {
	a.emit(isa.Inst{Op: isa.Store, Rs1: rs1, Rs2: rs2, Imm: imm})
}

func (a *asm) beq(rs1, rs2 isa.Reg, label string) {
	a.refer(label, fixRel)
	a.emit(isa.Inst{Op: isa.BranchEQ, Rs1: rs1, Rs2: rs2})
}

func (a *asm) bgeu(rs1, rs2 isa.Reg, label string) {
	a.refer(label, fixRel)
	a.emit(isa.Inst{Op: isa.BranchGEU, Rs1: rs1, Rs2: rs2})
}

func (a *asm) jal(rd isa.Reg, label string) {
	a.refer(label, fixRel)
	a.emit(isa.Inst{Op: isa.JumpLink, Rd: rd})
}

func (a *asm) jalr(rd, rs1 isa.Reg, imm int32) {
	a.emit(isa.Inst{Op: isa.JumpLinkReg, Rd: rd, Rs1: rs1, Imm: imm})
}

func (a *asm) ecall() {
	a.emit(isa.Inst{Op: isa.EnvCall})
}

// la loads the absolute address of a data label. The corpus images are small
// enough that every data address fits in the 12-bit addi immediate.
func (a *asm) la(rd isa.Reg, label string) {
	a.refer(label, fixAbs)
	a.addi(rd, isa.Zero, 0)
}

func (a *asm) dlabel(name string) {
	if _, ok := a.dataLabels[name]; ok {
		panic(fmt.Sprintf("duplicate data label %q", name))
	}
	a.dataLabels[name] = len(a.data)
}

// wordStr appends a character string as one word per character, the layout
// the word-only load/store instructions operate on.
func (a *asm) wordStr(s string) {
	for i := 0; i < len(s); i++ {
		a.data = append(a.data, uint32(s[i]))
	}
}

// assemble resolves labels and renders the image bytes.
func (a *asm) assemble() (program []byte, textLen uint32) {
	textLen = uint32(len(a.insts)) * isa.WordSize

	for _, f := range a.fixups {
		switch f.kind {
		case fixRel:
			idx, ok := a.labels[f.label]
			if !ok {
				panic(fmt.Sprintf("undefined label %q", f.label))
			}
			a.insts[f.at].Imm = int32(idx-f.at) * isa.WordSize
		case fixAbs:
			off, ok := a.dataLabels[f.label]
			if !ok {
				panic(fmt.Sprintf("undefined data label %q", f.label))
			}
			addr := textLen + uint32(off)*isa.WordSize
			if addr > 2047 {
				panic(fmt.Sprintf("data label %q out of immediate range", f.label))
			}
			a.insts[f.at].Imm = int32(addr)
		}
	}

	program = make([]byte, 0, int(textLen)+len(a.data)*isa.WordSize)
	for _, inst := range a.insts {
		program = appendWord(program, isa.Encode(inst))
	}
	for _, w := range a.data {
		program = appendWord(program, w)
	}

	return program, textLen
}

// addrOf returns the resolved address of a text label, used for entry
// points.
func (a *asm) addrOf(label string) uint32 {
	idx, ok := a.labels[label]
	if !ok {
		panic(fmt.Sprintf("undefined label %q", label))
	}
	return uint32(idx) * isa.WordSize
}

func appendWord(b []byte, w uint32) []byte {
	return append(b, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
}
