package ir

import "github.com/gorv32/asm/pkg/riscv"

// Instruction is a single parsed instruction, prior to (or after)
// displacement resolution and encoding. It carries the fixed ISA fields
// for its mnemonic plus whatever operands the front end filled in.
type Instruction struct {
	ID     riscv.InstID
	Opcode uint32
	Funct3 uint32
	Funct7 uint32

	// Rdst, Rsrc1, Rsrc2 are 5-bit register indices. Shift-immediate
	// instructions (SLLI/SRLI/SRAI) store their shift amount in Rsrc2.
	Rdst, Rsrc1, Rsrc2 uint32

	// Imm is the signed immediate once resolved. Its meaning depends on
	// the instruction's format; see package encode.
	Imm int32

	// TargetName, when non-empty, names an unresolved label. Imm is
	// meaningless until the displacement resolver has run.
	TargetName string

	// TargetAddress is the resolved absolute address of TargetName, kept
	// only so the disassembler can print something readable; encoding
	// never reads it.
	TargetAddress uint64
}

// HasTarget reports whether this instruction still carries an unresolved
// symbolic operand.
func (inst *Instruction) HasTarget() bool {
	return inst.TargetName != ""
}

// NewInstruction builds an Instruction with the fixed encoding fields for
// id pre-filled from the riscv table. Operand fields (Rdst, Rsrc1, Rsrc2,
// Imm, TargetName) are left zero for the caller to set.
func NewInstruction(id riscv.InstID) *Instruction {
	spec, ok := riscv.LookupSpec(id)
	if !ok {
		// Every InstID the encoder accepts has a table entry; reaching
		// here means a caller built an InstID by hand that doesn't
		// exist. There's no sane partial instruction to return, and
		// this is a programmer error rather than a runtime condition,
		// so it is the one place in this package that panics.
		panic("ir: unknown instruction id")
	}
	inst := &Instruction{
		ID:     id,
		Opcode: spec.Opcode,
		Funct3: spec.Funct3,
		Funct7: spec.Funct7,
	}
	switch id {
	case riscv.EBREAK:
		// ECALL and EBREAK share opcode and funct3; the I-type immediate
		// is what tells them apart (0 and 1 respectively).
		inst.Imm = 1
	case riscv.RET:
		// RET is JALR x0, x1, 0.
		inst.Rsrc1 = riscv.X1
	}
	return inst
}
