package emit

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
)

// WriteBin serializes list as one flat binary file per memory block.
// create is called once per block, in block order, to obtain the
// io.WriteCloser each block's image is written to and closed into;
// callers typically have it open "<base>-<index>.bin".
//
// Each file starts with its block's 16-byte-aligned start address as a
// little-endian uint64, followed by the block's image bytes.
func WriteBin(list *ir.BlockList, create func(index int) (io.WriteCloser, error)) error {
	for i, b := range list.Blocks {
		if err := writeBinBlock(i, b, create); err != nil {
			return err
		}
	}
	return nil
}

func writeBinBlock(index int, b *ir.Block, create func(int) (io.WriteCloser, error)) error {
	start, end := alignedSpan(b)
	buf, err := buildBuffer(b, start, end)
	if err != nil {
		return err
	}

	f, err := create(index)
	if err != nil {
		return errors.Wrapf(err, "emit: opening binary output for block %d", index)
	}

	var startBytes [8]byte
	binary.LittleEndian.PutUint64(startBytes[:], start)
	if _, err := f.Write(startBytes[:]); err != nil {
		f.Close()
		return errors.Wrapf(err, "emit: writing start address for block %d", index)
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		return errors.Wrapf(err, "emit: writing image for block %d", index)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "emit: closing binary output for block %d", index)
	}
	return nil
}
