// Package layout holds the handful of ELF64-layout constants that both
// the displacement resolver and the ELF emitter must agree on.
package layout

const (
	// ELFHeaderSize is sizeof(Elf64_Ehdr).
	ELFHeaderSize = 64

	// ProgramHeaderSize is sizeof(Elf64_Phdr).
	ProgramHeaderSize = 56

	// HeaderBias is the byte offset the ELF file header and its single
	// leading program header add in front of the image. LUI/ORI
	// address-of pairs and e_entry both bias a label's raw value by this
	// amount to land on the runtime virtual address.
	//
	// This is correct only when exactly one program header precedes the
	// image. A program with more than one memory block emits one
	// PT_LOAD header per block, so the true bias is
	// HeaderBias + ProgramHeaderSize*(N-1) for N blocks — this constant
	// underestimates it starting with the second block. That is a known
	// limitation carried over unchanged rather than silently patched,
	// because existing programs are written against this exact formula.
	HeaderBias = ELFHeaderSize + ProgramHeaderSize
)
