package asm

import (
	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/riscv"
	"github.com/gorv32/asm/pkg/symtab"
)

// Builder accumulates one memory block's worth of entries at
// sequentially increasing addresses, the way a front end's code
// generator does while walking a parsed mem() region. It exists so
// cmd/asm can demonstrate the pipeline without a text parser, which is
// out of scope for this module.
type Builder struct {
	prog    *Program
	base    uint64
	cursor  uint64
	entries []*ir.Entry
}

// OpenBlock starts a new block at base. The previous block, if any,
// must already have been closed with Close.
func (p *Program) OpenBlock(base uint64) *Builder {
	return &Builder{prog: p, base: base, cursor: base}
}

// Label declares name as a memory-address symbol at the builder's
// current address and appends a zero-size join node so a disassembly
// listing shows where it falls.
func (b *Builder) Label(name string) error {
	if err := b.prog.Symtab.Declare(name, symtab.Mem); err != nil {
		return err
	}
	if err := b.prog.Symtab.Update(name, b.cursor); err != nil {
		return err
	}
	e := ir.NewEntry(ir.JoinNode, 0)
	e.Name = name
	e.Address = b.cursor
	e.Status = ir.Complete
	b.entries = append(b.entries, e)
	return nil
}

// Emit appends inst at the builder's current address and advances the
// cursor by 4. If inst still names a TargetName, the entry is left
// Incomplete for the displacement resolver; otherwise it is marked
// Complete immediately.
func (b *Builder) Emit(inst *ir.Instruction) {
	e := ir.NewEntry(ir.InstructionEntry, 4)
	e.Inst = inst
	e.Address = b.cursor
	if !inst.HasTarget() {
		e.Status = ir.Complete
	}
	b.entries = append(b.entries, e)
	b.cursor += 4
}

// Word appends a 4-byte integer datum and advances the cursor by 4.
func (b *Builder) Word(v uint32) {
	e := ir.NewEntry(ir.WData, 4)
	e.Address = b.cursor
	e.IValue = uint64(v)
	e.Status = ir.Complete
	b.entries = append(b.entries, e)
	b.cursor += 4
}

// Byte appends a 1-byte integer datum and advances the cursor by 1.
func (b *Builder) Byte(v uint8) {
	e := ir.NewEntry(ir.BData, 1)
	e.Address = b.cursor
	e.IValue = uint64(v)
	e.Status = ir.Complete
	b.entries = append(b.entries, e)
	b.cursor++
}

// Close finalizes the block and appends it to the program's block list.
func (b *Builder) Close() error {
	if err := ir.AddMemblock(b.prog.Blocks, b.entries); err != nil {
		return errors.Wrap(err, "asm: closing block")
	}
	return nil
}

// NewInstruction is a convenience re-export so callers building a
// program by hand only need to import pkg/asm and pkg/riscv.
func NewInstruction(id riscv.InstID) *ir.Instruction {
	return ir.NewInstruction(id)
}
