package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorv32/asm/pkg/riscv"
)

func TestNewEntryDefaults(t *testing.T) {
	e := NewEntry(WData, 4)
	assert.Equal(t, Incomplete, e.Status)
	assert.Equal(t, WData, e.Type)
	assert.Equal(t, uint32(4), e.Size)
}

func TestNewInstructionEntryWrapsInstruction(t *testing.T) {
	e := NewInstructionEntry(riscv.ADDI)
	assert.Equal(t, InstructionEntry, e.Type)
	assert.Equal(t, uint32(4), e.Size)
	require.NotNil(t, e.Inst)
	assert.Equal(t, riscv.ADDI, e.Inst.ID)
}

func TestTypeStringCoversEveryValue(t *testing.T) {
	types := []Type{Definition, JoinNode, InstructionEntry, BData, HData, WData, LData, FData, DData, SData}
	seen := make(map[string]bool)
	for _, typ := range types {
		s := typ.String()
		assert.NotEqual(t, "unknown", s, "Type %d", typ)
		seen[s] = true
	}
	assert.Len(t, seen, len(types), "Type strings are not distinct")
	assert.Equal(t, "unknown", Type(99).String())
}
