// Package asm ties the symbol table, the IR, the displacement resolver,
// the encoder, and the three emitter back ends together into a single
// assembly pipeline.
//
// Package asm does not parse assembly text itself; it is the API a
// front end (a lexer/parser, or a program built by hand, as cmd/asm
// does for demonstration purposes) drives to turn a populated symbol
// table and block list into machine code and output files.
package asm

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gorv32/asm/pkg/disasm"
	"github.com/gorv32/asm/pkg/emit"
	"github.com/gorv32/asm/pkg/encode"
	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/pc"
	"github.com/gorv32/asm/pkg/resolve"
	"github.com/gorv32/asm/pkg/symtab"
)

// Program is one assembly unit: the symbol table and block list a front
// end has populated, plus the entry address it has set.
type Program struct {
	Symtab *symtab.Table
	Blocks *ir.BlockList
	Entry  *pc.PC

	assembled bool
}

// NewProgram returns an empty program ready for a front end to populate.
func NewProgram() *Program {
	return &Program{
		Symtab: symtab.New(),
		Blocks: &ir.BlockList{},
		Entry:  pc.New(),
	}
}

// Assemble validates block bounds, runs the displacement resolver, and
// encodes every instruction, in that order. It must be called exactly once, after the
// program's blocks and symbol table are fully populated, and before any
// of the Write* methods.
func (p *Program) Assemble() error {
	if p.assembled {
		return errors.New("asm: program already assembled")
	}
	if err := ir.CheckMemBounds(p.Blocks); err != nil {
		return errors.Wrap(err, "asm: checking memory block bounds")
	}
	if err := resolve.CalculateOffsets(p.Symtab, p.Blocks); err != nil {
		return errors.Wrap(err, "asm: resolving displacements")
	}
	if err := encode.Instructions(p.Blocks); err != nil {
		return errors.Wrap(err, "asm: encoding instructions")
	}
	p.assembled = true
	return nil
}

// Dump logs a disassembly listing of every block at debug level, one
// entry per line, mirroring the diagnostic dump the front end produces
// under a verbose-checking flag.
func (p *Program) Dump() {
	for _, b := range p.Blocks.Blocks {
		logrus.WithField("block", b.MinAddress).Debug("memory block")
		for _, e := range b.Entries {
			switch e.Type {
			case ir.InstructionEntry:
				logrus.WithFields(logrus.Fields{
					"address":  e.Address,
					"encoding": e.Encoding,
					"asm":      disasm.SprintAsm(e.Inst),
				}).Debug("instruction")
			case ir.Definition, ir.JoinNode:
				logrus.WithField("name", e.Name).Debug(e.Type.String() + " skipped")
			default:
				logrus.WithFields(logrus.Fields{
					"address": e.Address,
					"value":   e.IValue,
				}).Debug(e.Type.String())
			}
		}
	}
	p.Entry.Dump()
}

// WriteELF emits the program as an ELF64/EM_RISCV executable. Assemble
// must have already succeeded.
func (p *Program) WriteELF(w io.Writer) error {
	if !p.assembled {
		return errors.New("asm: program not assembled")
	}
	return emit.WriteELF(w, p.Blocks, p.Entry)
}

// WriteText emits the program as a hex text dump. Assemble must have
// already succeeded.
func (p *Program) WriteText(w io.Writer) error {
	if !p.assembled {
		return errors.New("asm: program not assembled")
	}
	return emit.WriteText(w, p.Blocks)
}

// WriteBin emits the program as one flat binary file per memory block,
// via create. Assemble must have already succeeded.
func (p *Program) WriteBin(create func(index int) (io.WriteCloser, error)) error {
	if !p.assembled {
		return errors.New("asm: program not assembled")
	}
	return emit.WriteBin(p.Blocks, create)
}
