// Package encode implements the RISC-V instruction encoder: a pure
// function from an already-resolved instruction record to its 32-bit
// machine word, dispatching on format (R, I, S, B, U, J).
//
// None of the encoders here perform operand range checking. Callers are
// responsible for supplying register indices and immediates within the
// ISA's legal range. The displacement resolver masks the branch, LUI and
// ORI immediates it produces to their field widths; JAL/J displacements
// keep their full signed width and jType selects the bits it needs.
package encode

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/riscv"
)

// ErrUnknownFormat means an instruction's riscv.Format did not match any
// of the six encoders this package implements — an internal invariant
// violation, since every InstID the riscv table knows about ties to one
// of them.
var ErrUnknownFormat = errors.New("encode: unknown instruction format")

// Instruction encodes a single instruction record into its 32-bit word.
func Instruction(inst *ir.Instruction) (uint32, error) {
	spec, ok := riscv.LookupSpec(inst.ID)
	if !ok {
		return 0, fmt.Errorf("encode: no encoding spec for %s", inst.ID)
	}
	switch spec.Format {
	case riscv.FormatR:
		return rType(inst), nil
	case riscv.FormatI:
		return iType(inst), nil
	case riscv.FormatS:
		return sType(inst), nil
	case riscv.FormatB:
		return bType(inst), nil
	case riscv.FormatU:
		return uType(inst), nil
	case riscv.FormatJ:
		return jType(inst), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownFormat, spec.Format)
	}
}

// Instructions walks every block in list and overwrites the Encoding
// field of each instruction entry. Non-instruction entries are skipped.
func Instructions(list *ir.BlockList) error {
	for _, block := range list.Blocks {
		for _, entry := range block.Entries {
			if entry.Type != ir.InstructionEntry {
				continue
			}
			word, err := Instruction(entry.Inst)
			if err != nil {
				return err
			}
			entry.Encoding = word
		}
	}
	return nil
}

// rType lays out:
//
//	[31:25] funct7 | [24:20] rsrc2 | [19:15] rsrc1 | [14:12] funct3 | [11:7] rdst | [6:0] opcode
//
// Shift-immediate instructions (SLLI/SRLI/SRAI) reuse this layout with
// Rsrc2 carrying the 5-bit shift amount.
func rType(inst *ir.Instruction) uint32 {
	var w uint32
	w |= inst.Opcode
	w |= inst.Rdst << 7
	w |= inst.Funct3 << 12
	w |= inst.Rsrc1 << 15
	w |= inst.Rsrc2 << 20
	w |= inst.Funct7 << 25
	return w
}

// iType lays out:
//
//	[31:20] imm[11:0] | [19:15] rsrc1 | [14:12] funct3 | [11:7] rdst | [6:0] opcode
//
// The raw 32-bit Imm is shifted left by 20 unmasked; callers supplying
// branch-style displacements have already masked them to the field
// width, as the resolver does.
func iType(inst *ir.Instruction) uint32 {
	var w uint32
	w |= inst.Opcode
	w |= inst.Rdst << 7
	w |= inst.Funct3 << 12
	w |= inst.Rsrc1 << 15
	w |= uint32(inst.Imm) << 20
	return w
}

// sType lays out:
//
//	[31:25] imm[11:5] | [24:20] rsrc2 | [19:15] rsrc1 | [14:12] funct3 | [11:7] imm[4:0] | [6:0] opcode
func sType(inst *ir.Instruction) uint32 {
	const lowMask = 0x1f
	const highMask = 0xfe0
	imm := uint32(inst.Imm)
	low := imm & lowMask
	high := imm & highMask

	var w uint32
	w |= inst.Opcode
	w |= inst.Funct3 << 12
	w |= inst.Rsrc1 << 15
	w |= inst.Rsrc2 << 20
	w |= high << 20
	w |= low << 7
	return w
}

// bType lays out the 13-bit branch displacement (bit 0 implicit zero)
// across the word:
//
//	[31] imm[12] | [30:25] imm[10:5] | [24:20] rsrc2 | [19:15] rsrc1 | [14:12] funct3 | [11:8] imm[4:1] | [7] imm[11] | [6:0] opcode
func bType(inst *ir.Instruction) uint32 {
	imm := uint32(inst.Imm)
	var w uint32
	w |= (imm & 0x800) >> 4   // imm[11] -> bit 7
	w |= (imm & 0x1e) << 7    // imm[4:1] -> bits 11:8
	w |= (imm & 0x7e0) << 20  // imm[10:5] -> bits 30:25
	w |= (imm & 0x1000) << 19 // imm[12] -> bit 31

	w |= inst.Opcode
	w |= inst.Funct3 << 12
	w |= inst.Rsrc1 << 15
	w |= inst.Rsrc2 << 20
	return w
}

// uType lays out:
//
//	[31:12] imm[19:0] | [11:7] rdst | [6:0] opcode
func uType(inst *ir.Instruction) uint32 {
	var w uint32
	w |= inst.Opcode
	w |= inst.Rdst << 7
	w |= uint32(inst.Imm) << 12
	return w
}

// jType lays out the 21-bit jump displacement (bit 0 implicit zero):
//
//	[31] imm[20] | [30:21] imm[10:1] | [20] imm[11] | [19:12] imm[19:12] | [11:7] rdst | [6:0] opcode
func jType(inst *ir.Instruction) uint32 {
	imm := uint32(inst.Imm)
	var w uint32
	w |= imm & 0xff000          // imm[19:12], already in place
	w |= (imm & 0x800) << 9     // imm[11] -> bit 20
	w |= (imm & 0x7fe) << 20    // imm[10:1] -> bits 30:21
	w |= (imm & 0x100000) << 11 // imm[20] -> bit 31

	w |= inst.Opcode
	w |= inst.Rdst << 7
	return w
}
