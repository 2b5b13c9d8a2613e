package emit

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/gorv32/asm/pkg/ir"
)

// WriteText renders every block of list as a hex dump: 16 bytes per
// line, each line prefixed with its 12-hex-digit address, and a blank
// line after each block (including the last).
func WriteText(w io.Writer, list *ir.BlockList) error {
	for _, b := range list.Blocks {
		start, end := alignedSpan(b)
		buf, err := buildBuffer(b, start, end)
		if err != nil {
			return err
		}
		if err := writeTextBlock(w, start, buf); err != nil {
			return err
		}
	}
	return nil
}

func writeTextBlock(w io.Writer, start uint64, buf []byte) error {
	for i, b := range buf {
		if i&0xf == 0 {
			if _, err := fmt.Fprintf(w, "%012x  ", start+uint64(i)); err != nil {
				return errors.Wrap(err, "emit: writing text address column")
			}
		}
		sep := " "
		if i&0xf == 15 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%02x%s", b, sep); err != nil {
			return errors.Wrap(err, "emit: writing text byte")
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return errors.Wrap(err, "emit: writing text block separator")
	}
	return nil
}
