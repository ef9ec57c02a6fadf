package isa

import "fmt"

// Opcode identifies one of the operations the corpus relies on.
type Opcode int

const (
	// AddImm is addi rd, rs1, imm.
	AddImm Opcode = iota
	// Add is add rd, rs1, rs2.
	Add
	// Load is lw rd, imm(rs1).
	Load
	// Store is sw rs2, imm(rs1).
	Store
	// BranchEQ is beq rs1, rs2, offset.
	BranchEQ
	// BranchGEU is bgeu rs1, rs2, offset (unsigned comparison).
	BranchGEU
	// JumpLink is jal rd, offset.
	JumpLink
	// JumpLinkReg is jalr rd, imm(rs1).
	JumpLinkReg
	// EnvCall is ecall, the single modeled syscall.
	EnvCall
)

// Mnemonic returns the assembly mnemonic of the opcode.
func (o Opcode) Mnemonic() string {
	switch o {
	case AddImm:
		return "addi"
	case Add:
		return "add"
	case Load:
		return "lw"
	case Store:
		return "sw"
	case BranchEQ:
		return "beq"
	case BranchGEU:
		return "bgeu"
	case JumpLink:
		return "jal"
	case JumpLinkReg:
		return "jalr"
	case EnvCall:
		return "ecall"
	default:
		panic("invalid opcode")
	}
}

// Inst is one decoded instruction word. Branch and jump immediates are byte
// offsets relative to the program counter of the instruction itself.
type Inst struct {
	Op  Opcode
	Rd  Reg
	Rs1 Reg
	Rs2 Reg
	Imm int32
}

func (i Inst) String() string {
	switch i.Op {
	case AddImm:
		return fmt.Sprintf("addi %s, %s, %d", i.Rd.Name(), i.Rs1.Name(), i.Imm)
	case Add:
		return fmt.Sprintf("add %s, %s, %s", i.Rd.Name(), i.Rs1.Name(), i.Rs2.Name())
	case Load:
		return fmt.Sprintf("lw %s, %d(%s)", i.Rd.Name(), i.Imm, i.Rs1.Name())
	case Store:
		return fmt.Sprintf("sw %s, %d(%s)", i.Rs2.Name(), i.Imm, i.Rs1.Name())
	case BranchEQ, BranchGEU:
		return fmt.Sprintf("%s %s, %s, %d",
			i.Op.Mnemonic(), i.Rs1.Name(), i.Rs2.Name(), i.Imm)
	case JumpLink:
		return fmt.Sprintf("jal %s, %d", i.Rd.Name(), i.Imm)
	case JumpLinkReg:
		return fmt.Sprintf("jalr %s, %d(%s)", i.Rd.Name(), i.Imm, i.Rs1.Name())
	case EnvCall:
		return "ecall"
	default:
		panic("invalid opcode")
	}
}

// Base opcode groups of the RV32I encodings in use.
const (
	groupLoad   = 0x03
	groupOpImm  = 0x13
	groupStore  = 0x23
	groupOp     = 0x33
	groupBranch = 0x63
	groupJALR   = 0x67
	groupJAL    = 0x6f
	groupSystem = 0x73
)

const ecallWord = 0x00000073

// Decode maps one instruction word to its typed operation. It is a pure
// function and recognizes exactly the encodings the corpus uses; any other
// word yields an IllegalInstruction fault.
func Decode(word uint32) (Inst, error) {
	rd := Reg((word >> 7) & 0x1f)
	rs1 := Reg((word >> 15) & 0x1f)
	rs2 := Reg((word >> 20) & 0x1f)
	funct3 := (word >> 12) & 0x7
	funct7 := word >> 25

	switch word & 0x7f {
	case groupOpImm:
		if funct3 == 0 {
			return Inst{Op: AddImm, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
		}
	case groupOp:
		if funct3 == 0 && funct7 == 0 {
			return Inst{Op: Add, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		}
	case groupLoad:
		if funct3 == 2 {
			return Inst{Op: Load, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
		}
	case groupStore:
		if funct3 == 2 {
			return Inst{Op: Store, Rs1: rs1, Rs2: rs2, Imm: immS(word)}, nil
		}
	case groupBranch:
		switch funct3 {
		case 0:
			return Inst{Op: BranchEQ, Rs1: rs1, Rs2: rs2, Imm: immB(word)}, nil
		case 7:
			return Inst{Op: BranchGEU, Rs1: rs1, Rs2: rs2, Imm: immB(word)}, nil
		}
	case groupJAL:
		return Inst{Op: JumpLink, Rd: rd, Imm: immJ(word)}, nil
	case groupJALR:
		if funct3 == 0 {
			return Inst{Op: JumpLinkReg, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
		}
	case groupSystem:
		if word == ecallWord {
			return Inst{Op: EnvCall}, nil
		}
	}

	return Inst{}, NewIllegalInstruction(word)
}

// immI extracts the sign-extended I-type immediate, bits [31:20].
func immI(word uint32) int32 {
	return int32(word) >> 20
}

// immS extracts the sign-extended S-type immediate, bits [31:25|11:7].
func immS(word uint32) int32 {
	return (int32(word&0xfe000000) >> 20) | int32((word>>7)&0x1f)
}

// immB extracts the sign-extended B-type immediate,
// bits [31|7|30:25|11:8] holding offset bits [12|11|10:5|4:1].
func immB(word uint32) int32 {
	imm := ((word>>31)&0x1)<<12 |
		((word>>7)&0x1)<<11 |
		((word>>25)&0x3f)<<5 |
		((word>>8)&0xf)<<1
	return int32(imm<<19) >> 19
}

// immJ extracts the sign-extended J-type immediate,
// bits [31|19:12|20|30:21] holding offset bits [20|19:12|11|10:1].
func immJ(word uint32) int32 {
	imm := ((word>>31)&0x1)<<20 |
		((word>>12)&0xff)<<12 |
		((word>>20)&0x1)<<11 |
		((word>>21)&0x3ff)<<1
	return int32(imm<<11) >> 11
}

// Encode is the inverse of Decode. The fixture assembler uses it to build
// program images.
func Encode(i Inst) uint32 {
	switch i.Op {
	case AddImm:
		return encI(groupOpImm, 0, i.Rd, i.Rs1, i.Imm)
	case Add:
		return groupOp |
			uint32(i.Rd)<<7 | uint32(i.Rs1)<<15 | uint32(i.Rs2)<<20
	case Load:
		return encI(groupLoad, 2, i.Rd, i.Rs1, i.Imm)
	case Store:
		return encS(2, i.Rs1, i.Rs2, i.Imm)
	case BranchEQ:
		return encB(0, i.Rs1, i.Rs2, i.Imm)
	case BranchGEU:
		return encB(7, i.Rs1, i.Rs2, i.Imm)
	case JumpLink:
		return encJ(i.Rd, i.Imm)
	case JumpLinkReg:
		return encI(groupJALR, 0, i.Rd, i.Rs1, i.Imm)
	case EnvCall:
		return ecallWord
	default:
		panic("invalid opcode")
	}
}

func encI(group, funct3 uint32, rd, rs1 Reg, imm int32) uint32 {
	return group |
		uint32(rd)<<7 | funct3<<12 | uint32(rs1)<<15 | uint32(imm)<<20
}

func encS(funct3 uint32, rs1, rs2 Reg, imm int32) uint32 {
	u := uint32(imm)
	return groupStore |
		(u&0x1f)<<7 | funct3<<12 | uint32(rs1)<<15 | uint32(rs2)<<20 |
		((u>>5)&0x7f)<<25
}

func encB(funct3 uint32, rs1, rs2 Reg, imm int32) uint32 {
	u := uint32(imm)
	return groupBranch |
		((u>>11)&0x1)<<7 | ((u>>1)&0xf)<<8 | funct3<<12 |
		uint32(rs1)<<15 | uint32(rs2)<<20 |
		((u>>5)&0x3f)<<25 | ((u>>12)&0x1)<<31
}

func encJ(rd Reg, imm int32) uint32 {
	u := uint32(imm)
	return groupJAL |
		uint32(rd)<<7 | ((u>>12)&0xff)<<12 | ((u>>11)&0x1)<<20 |
		((u>>1)&0x3ff)<<21 | ((u>>20)&0x1)<<31
}
