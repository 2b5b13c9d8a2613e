// Package emit contains the three output back ends that turn a resolved,
// encoded program image into files: an ELF64 executable, a hex text
// dump, and one flat binary per memory block. The hex text and flat
// binary writers share the buffer-building traversal defined here; the
// ELF writer walks entries and writes inter-entry padding itself, in
// elf.go.
package emit

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
)

// ErrInvalidEntry means an entry of a type the emitter does not know how
// to place in a byte buffer reached the traversal — an internal
// invariant violation.
var ErrInvalidEntry = errors.New("emit: invalid entry type")

// ErrUnsupportedDatum means an L/F/D/S-data entry reached the hex text or
// flat binary back end, neither of which implements wide or string data
// yet.
var ErrUnsupportedDatum = errors.New("emit: datum type not supported by this writer")

// ErrMisaligned means an entry's address does not satisfy its type's
// natural alignment.
var ErrMisaligned = errors.New("emit: misaligned entry")

const blockAlign = 16

// alignedSpan returns the 16-byte-aligned [start, end) byte range that
// covers every entry in b, widened outward per the hex/bin writers'
// convention: start rounds min down to 16, end rounds (max+16) down to
// 16 (i.e. the end of the 16-byte line holding the block's last byte).
func alignedSpan(b *ir.Block) (start, end uint64) {
	start = b.MinAddress &^ (blockAlign - 1)
	end = (b.MaxAddress + blockAlign) &^ (blockAlign - 1)
	return start, end
}

// buildBuffer serializes every entry of b, little-endian, into a
// zero-initialized byte buffer spanning [start, end). It is shared by
// the hex text and flat binary writers, neither of which supports
// L/F/D/S data.
func buildBuffer(b *ir.Block, start, end uint64) ([]byte, error) {
	buf := make([]byte, end-start)
	for _, e := range b.Entries {
		idx := e.Address - start
		switch e.Type {
		case ir.InstructionEntry:
			if e.Address&0x3 != 0 {
				return nil, fmt.Errorf("%w: instruction at 0x%012x", ErrMisaligned, e.Address)
			}
			binary.LittleEndian.PutUint32(buf[idx:], e.Encoding)
		case ir.BData:
			buf[idx] = byte(e.IValue)
		case ir.HData:
			if e.Address&0x1 != 0 {
				return nil, fmt.Errorf("%w: hdata at 0x%012x", ErrMisaligned, e.Address)
			}
			binary.LittleEndian.PutUint16(buf[idx:], uint16(e.IValue))
		case ir.WData:
			if e.Address&0x3 != 0 {
				return nil, fmt.Errorf("%w: wdata at 0x%012x", ErrMisaligned, e.Address)
			}
			binary.LittleEndian.PutUint32(buf[idx:], uint32(e.IValue))
		case ir.LData, ir.FData, ir.DData, ir.SData:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDatum, e.Type)
		case ir.Definition, ir.JoinNode:
			// size 0, nothing to write
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidEntry, e.Type)
		}
	}
	return buf, nil
}
