package ir

import "github.com/gorv32/asm/pkg/riscv"

// Status tags whether an Entry still has an unresolved symbolic operand.
type Status int

const (
	Incomplete Status = iota
	Complete
)

// Type tags what an Entry holds. Definitions and join nodes are size-0
// markers the front end uses to anchor named constants and control-flow
// reconvergence points; the encoder and emitter both skip them.
type Type int

const (
	Definition Type = iota
	JoinNode
	InstructionEntry
	BData // 1 byte
	HData // 2 bytes
	WData // 4 bytes
	LData // 8 bytes
	FData // 4-byte float
	DData // 8-byte double
	SData // NUL-terminated string
)

func (t Type) String() string {
	switch t {
	case Definition:
		return "definition"
	case JoinNode:
		return "join-node"
	case InstructionEntry:
		return "instruction"
	case BData:
		return "bdata"
	case HData:
		return "hdata"
	case WData:
		return "wdata"
	case LData:
		return "ldata"
	case FData:
		return "fdata"
	case DData:
		return "ddata"
	case SData:
		return "sdata"
	default:
		return "unknown"
	}
}

// Entry is one addressable item in a memory block: an instruction or a
// datum. Which of Inst/IValue/FValue/SValue/Encoding is meaningful is
// determined entirely by Type — this is a tagged variant, not a memory
// overlay, unlike the union the original C assembler used for the same
// purpose.
type Entry struct {
	Status Status
	Type   Type

	// Name labels a Definition or JoinNode for diagnostic dumps. Unused
	// for every other Type.
	Name string

	Address uint64
	Size    uint32

	// Inst is set only when Type == InstructionEntry.
	Inst *Instruction

	// IValue holds the payload for BData/HData/WData/LData, truncated to
	// the width implied by Type at emission time.
	IValue uint64

	// FValue holds the payload for FData/DData.
	FValue float64

	// SValue holds the payload for SData, already escape-processed.
	SValue string

	// Encoding is the instruction's 32-bit machine word. Valid only once
	// Type == InstructionEntry and the encoder has run.
	Encoding uint32
}

// NewEntry allocates a zeroed entry of the given type and size, with
// status Incomplete.
func NewEntry(typ Type, size uint32) *Entry {
	return &Entry{Status: Incomplete, Type: typ, Size: size}
}

// NewInstructionEntry allocates an instruction entry of size 4 wrapping a
// freshly built instruction record for id.
func NewInstructionEntry(id riscv.InstID) *Entry {
	return &Entry{
		Status: Incomplete,
		Type:   InstructionEntry,
		Size:   4,
		Inst:   NewInstruction(id),
	}
}
