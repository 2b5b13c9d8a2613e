// Package resolve implements the displacement resolver: the pass that
// turns an instruction's symbolic target_name into the concrete Imm bits
// its format expects, using the program's symbol table.
package resolve

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/layout"
	"github.com/gorv32/asm/pkg/riscv"
	"github.com/gorv32/asm/pkg/symtab"
)

// Errors returned by CalculateOffsets.
var (
	ErrUnknownLabel         = errors.New("resolve: label not found in symbol table")
	ErrLabelIsNotMemory     = errors.New("resolve: label does not refer to a memory address")
	ErrUnexpectedIncomplete = errors.New("resolve: unexpected incomplete instruction")
)

// CalculateOffsets walks every instruction entry in every block of list
// whose Status is Incomplete, resolves its Inst.TargetName against table,
// and fills in Inst.Imm according to the instruction's family. Entries
// that are already Complete are left untouched.
func CalculateOffsets(table *symtab.Table, list *ir.BlockList) error {
	for _, block := range list.Blocks {
		for _, entry := range block.Entries {
			if entry.Type != ir.InstructionEntry || entry.Status != ir.Incomplete {
				continue
			}
			if err := resolveOne(table, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveOne(table *symtab.Table, entry *ir.Entry) error {
	inst := entry.Inst
	target, ok := table.Lookup(inst.TargetName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, inst.TargetName)
	}
	kind, _ := table.KindOf(inst.TargetName)
	if kind != symtab.Mem {
		return fmt.Errorf("%w: %q is a %s", ErrLabelIsNotMemory, inst.TargetName, kind)
	}

	inst.TargetAddress = target
	switch inst.ID {
	case riscv.JAL, riscv.J:
		inst.Imm = int32(target - entry.Address)
	case riscv.BEQ, riscv.BNE, riscv.BLT, riscv.BGE, riscv.BLTU, riscv.BGEU:
		inst.Imm = int32((target - entry.Address) & 0x1fff)
	case riscv.LUI:
		inst.Imm = int32(((target + layout.HeaderBias) >> 12) & 0xfffff)
	case riscv.ORI:
		inst.Imm = int32((target + layout.HeaderBias) & 0xfff)
	default:
		return fmt.Errorf("%w: address 0x%012x, id %s", ErrUnexpectedIncomplete, entry.Address, inst.ID)
	}

	entry.Status = ir.Complete
	return nil
}
