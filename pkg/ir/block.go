package ir

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned while building or validating the block list.
var (
	// ErrCorruptBlock means a block's entries are not address-ordered:
	// the last entry's address is strictly less than the head's.
	ErrCorruptBlock = errors.New("ir: memory block addresses are corrupt")

	// ErrOverlappingBlocks means CheckMemBounds found two blocks whose
	// [min,max] address ranges intersect.
	ErrOverlappingBlocks = errors.New("ir: memory blocks overlap")
)

// Block is one memory block: an ordered run of entries laid out together
// by the front end, plus the address span they occupy.
//
// The original assembler threaded entries through an intrusive singly
// linked list. Nothing here depends on splicing entries mid-block, so a
// block is just the entries in append order.
type Block struct {
	Entries    []*Entry
	MinAddress uint64
	MaxAddress uint64
}

// AppendEntry appends e to the block.
func AppendEntry(b *Block, e *Entry) {
	b.Entries = append(b.Entries, e)
}

// BlockList is the ordered collection of memory blocks that make up a
// program image.
type BlockList struct {
	Blocks []*Block
}

// AddMemblock computes a block's (min, max) address span from its
// entries and appends it to the list.
//
// An empty entries slice produces a block with both bounds at 0 (an
// empty mem() region in the source). Otherwise MinAddress is the first
// entry's address; MaxAddress is the last entry's (address + size - 1),
// unless every entry shares the head's address (a block made only of
// size-0 definition/join-node entries), in which case MaxAddress equals
// that shared address too. If the last entry's address is strictly less
// than the head's, the input is corrupt.
func AddMemblock(list *BlockList, entries []*Entry) error {
	block := &Block{Entries: entries}

	if len(entries) == 0 {
		block.MinAddress = 0
		block.MaxAddress = 0
		list.Blocks = append(list.Blocks, block)
		return nil
	}

	head := entries[0]
	tail := entries[len(entries)-1]

	switch {
	case head.Address < tail.Address:
		block.MinAddress = head.Address
		block.MaxAddress = tail.Address + uint64(tail.Size) - 1
	case head.Address == tail.Address:
		block.MinAddress = head.Address
		block.MaxAddress = tail.Address
	default:
		return fmt.Errorf("%w: head=0x%012x tail=0x%012x", ErrCorruptBlock, head.Address, tail.Address)
	}

	list.Blocks = append(list.Blocks, block)
	return nil
}

// CheckMemBounds verifies that no two blocks with a nonzero span overlap.
// It is O(B²) in the number of blocks, which is fine for the handful of
// blocks a realistic program has.
func CheckMemBounds(list *BlockList) error {
	for _, a := range list.Blocks {
		if a.MinAddress == a.MaxAddress {
			continue
		}
		for _, b := range list.Blocks {
			if a == b || b.MinAddress == b.MaxAddress {
				continue
			}
			if a.MinAddress <= b.MinAddress && a.MaxAddress >= b.MinAddress {
				return fmt.Errorf("%w: block at 0x%012x overlaps block at 0x%012x",
					ErrOverlappingBlocks, a.MinAddress, b.MinAddress)
			}
		}
	}
	return nil
}
