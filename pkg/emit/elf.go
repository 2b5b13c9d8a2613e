package emit

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/layout"
	"github.com/gorv32/asm/pkg/pc"
)

// header64 mirrors the fixed-size prefix of an ELF64 file header, laid
// out field-for-field so it can be written with one binary.Write call.
type header64 struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// progHeader64 mirrors Elf64_Phdr.
type progHeader64 struct {
	Type   uint32
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// WriteELF serializes list as a single ELFCLASS64/EM_RISCV executable
// with one PT_LOAD program header per memory block and no section
// headers, string tables, or relocation records — this back end only
// ever produces a final, already-linked image.
//
// e_entry is biased by layout.HeaderBias, same as every LUI/ORI
// address-of pair the resolver computes: the bias is only exactly
// right for a single-block program, and that inaccuracy is carried
// through here unchanged for programs with more than one block.
func WriteELF(w io.Writer, list *ir.BlockList, entry *pc.PC) error {
	nblocks := len(list.Blocks)

	ident := [16]byte{
		elf.ELFMAG[0], elf.ELFMAG[1], elf.ELFMAG[2], elf.ELFMAG[3],
		byte(elf.ELFCLASS64), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT), byte(elf.ELFOSABI_NONE),
	}

	entryAddr, _ := entry.Get()

	hdr := header64{
		Ident:     ident,
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_RISCV),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entryAddr + layout.HeaderBias,
		Phoff:     layout.ELFHeaderSize,
		Shoff:     0,
		Flags:     0,
		Ehsize:    layout.ELFHeaderSize,
		Phentsize: layout.ProgramHeaderSize,
		Phnum:     uint16(nblocks),
		Shentsize: 0,
		Shnum:     0,
		Shstrndx:  0,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return errors.Wrap(err, "emit: writing ELF header")
	}

	for _, b := range list.Blocks {
		filesz := (b.MaxAddress - b.MinAddress) + layout.HeaderBias + 1
		ph := progHeader64{
			Type:   uint32(elf.PT_LOAD),
			Flags:  uint32(elf.PF_X | elf.PF_R | elf.PF_W),
			Offset: 0,
			Vaddr:  b.MinAddress,
			Paddr:  b.MinAddress,
			Filesz: filesz,
			Memsz:  filesz,
			Align:  4096,
		}
		if err := binary.Write(w, binary.LittleEndian, ph); err != nil {
			return errors.Wrap(err, "emit: writing ELF program header")
		}
	}

	for _, b := range list.Blocks {
		if err := writeELFBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

// writeELFBlock writes one block's entries back-to-back, each followed
// by zero padding out to the next entry's address — reproducing a
// dense image with no section alignment beyond what each entry demands.
func writeELFBlock(w io.Writer, b *ir.Block) error {
	for i, e := range b.Entries {
		raw, err := elfEntryBytes(e)
		if err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			return errors.Wrap(err, "emit: writing entry to ELF image")
		}
		if i+1 < len(b.Entries) {
			next := b.Entries[i+1]
			gap := next.Address - (e.Address + uint64(e.Size))
			if gap > 0 {
				if _, err := w.Write(make([]byte, gap)); err != nil {
					return errors.Wrap(err, "emit: writing ELF alignment padding")
				}
			}
		}
	}
	return nil
}

func elfEntryBytes(e *ir.Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch e.Type {
	case ir.InstructionEntry:
		binary.Write(buf, binary.LittleEndian, e.Encoding)
	case ir.BData:
		binary.Write(buf, binary.LittleEndian, uint8(e.IValue))
	case ir.HData:
		binary.Write(buf, binary.LittleEndian, uint16(e.IValue))
	case ir.WData:
		binary.Write(buf, binary.LittleEndian, uint32(e.IValue))
	case ir.LData:
		binary.Write(buf, binary.LittleEndian, e.IValue)
	case ir.FData:
		binary.Write(buf, binary.LittleEndian, float32(e.FValue))
	case ir.DData:
		binary.Write(buf, binary.LittleEndian, e.FValue)
	case ir.SData:
		buf.WriteString(e.SValue)
		buf.WriteByte(0)
	case ir.Definition, ir.JoinNode:
		// nothing written
	default:
		return nil, errors.Wrapf(ErrInvalidEntry, "entry type %s", e.Type)
	}
	return buf.Bytes(), nil
}
