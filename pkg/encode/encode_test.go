package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/riscv"
)

func build(id riscv.InstID, fill func(*ir.Instruction)) *ir.Instruction {
	inst := ir.NewInstruction(id)
	if fill != nil {
		fill(inst)
	}
	return inst
}

// The first seven cases are the module's six canonical end-to-end test
// vectors (E6 split into its LUI and ORI halves), each hand-checked
// against the RV32I encoding tables. The
// rest pin down the system instructions and the pseudo-op register
// conventions.
func TestInstructionVectors(t *testing.T) {
	cases := []struct {
		name string
		inst *ir.Instruction
		want uint32
	}{
		{
			name: "E1 ADDI x5, x6, 0x123",
			inst: build(riscv.ADDI, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Imm = 5, 6, 0x123 }),
			want: 0x12330293,
		},
		{
			name: "E2 ADD x1, x2, x3",
			inst: build(riscv.ADD, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Rsrc2 = 1, 2, 3 }),
			want: 0x003100B3,
		},
		{
			name: "E3 SUB x1, x2, x3",
			inst: build(riscv.SUB, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Rsrc2 = 1, 2, 3 }),
			want: 0x403100B3,
		},
		{
			name: "E4 BEQ x1, x2, +8",
			inst: build(riscv.BEQ, func(i *ir.Instruction) { i.Rsrc1, i.Rsrc2, i.Imm = 1, 2, 8 }),
			want: 0x00208463,
		},
		{
			name: "E5 JAL x1, +0x100",
			inst: build(riscv.JAL, func(i *ir.Instruction) { i.Rdst, i.Imm = 1, 0x100 }),
			want: 0x100000EF,
		},
		{
			name: "E6a LUI x5, 1",
			inst: build(riscv.LUI, func(i *ir.Instruction) { i.Rdst, i.Imm = 5, 1 }),
			want: 0x000012B7,
		},
		{
			name: "E6b ORI x5, x5, 0x078",
			inst: build(riscv.ORI, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Imm = 5, 5, 0x078 }),
			want: 0x0782E293,
		},
		{
			name: "ECALL",
			inst: build(riscv.ECALL, nil),
			want: 0x00000073,
		},
		{
			name: "EBREAK",
			inst: build(riscv.EBREAK, nil),
			want: 0x00100073,
		},
		{
			name: "RET is JALR x0, x1, 0",
			inst: build(riscv.RET, nil),
			want: 0x00008067,
		},
		{
			name: "JR x5 is JALR x0, x5, 0",
			inst: build(riscv.JR, func(i *ir.Instruction) { i.Rsrc1 = 5 }),
			want: 0x00028067,
		},
		{
			name: "J +8 is JAL x0, +8",
			inst: build(riscv.J, func(i *ir.Instruction) { i.Imm = 8 }),
			want: 0x0080006F,
		},
		{
			name: "NOP is ADDI x0, x0, 0",
			inst: build(riscv.ADDI, nil),
			want: 0x00000013,
		},
		{
			name: "SRAI x1, x2, 3",
			inst: build(riscv.SRAI, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Rsrc2 = 1, 2, 3 }),
			want: 0x40315093,
		},
		{
			name: "SW x3, 4(x2)",
			inst: build(riscv.SW, func(i *ir.Instruction) { i.Rsrc1, i.Rsrc2, i.Imm = 2, 3, 4 }),
			want: 0x00312223,
		},
		{
			name: "MUL x1, x2, x3",
			inst: build(riscv.MUL, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Rsrc2 = 1, 2, 3 }),
			want: 0x023100B3,
		},
		{
			name: "DIV x1, x2, x3",
			inst: build(riscv.DIV, func(i *ir.Instruction) { i.Rdst, i.Rsrc1, i.Rsrc2 = 1, 2, 3 }),
			want: 0x023140B3,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Instruction(c.inst)
			require.NoError(t, err)
			assert.Equalf(t, c.want, got, "encoding = %#08x, want %#08x", got, c.want)
		})
	}
}

// Changing one operand field must change exactly the bit slice that
// field occupies in its format, and nothing else.
func TestFieldBitPlacement(t *testing.T) {
	cases := []struct {
		name     string
		id       riscv.InstID
		mutate   func(*ir.Instruction)
		wantMask uint32
	}{
		{"R rdst", riscv.ADD, func(i *ir.Instruction) { i.Rdst = 0x1f }, 0x1f << 7},
		{"R rsrc1", riscv.ADD, func(i *ir.Instruction) { i.Rsrc1 = 0x1f }, 0x1f << 15},
		{"R rsrc2", riscv.ADD, func(i *ir.Instruction) { i.Rsrc2 = 0x1f }, 0x1f << 20},
		{"I imm", riscv.ADDI, func(i *ir.Instruction) { i.Imm = 0xfff }, 0xfff << 20},
		{"S imm low", riscv.SW, func(i *ir.Instruction) { i.Imm = 0x1f }, 0x1f << 7},
		{"S imm high", riscv.SW, func(i *ir.Instruction) { i.Imm = 0xfe0 }, uint32(0x7f) << 25},
		{"B imm[4:1]", riscv.BEQ, func(i *ir.Instruction) { i.Imm = 0x1e }, 0xf << 8},
		{"B imm[10:5]", riscv.BEQ, func(i *ir.Instruction) { i.Imm = 0x7e0 }, 0x3f << 25},
		{"B imm[11]", riscv.BEQ, func(i *ir.Instruction) { i.Imm = 0x800 }, 1 << 7},
		{"B imm[12]", riscv.BEQ, func(i *ir.Instruction) { i.Imm = 0x1000 }, 1 << 31},
		{"U imm", riscv.LUI, func(i *ir.Instruction) { i.Imm = 0xfffff }, 0xfffff << 12},
		{"J imm[10:1]", riscv.JAL, func(i *ir.Instruction) { i.Imm = 0x7fe }, 0x3ff << 21},
		{"J imm[11]", riscv.JAL, func(i *ir.Instruction) { i.Imm = 0x800 }, 1 << 20},
		{"J imm[19:12]", riscv.JAL, func(i *ir.Instruction) { i.Imm = 0xff000 }, 0xff << 12},
		{"J imm[20]", riscv.JAL, func(i *ir.Instruction) { i.Imm = 0x100000 }, 1 << 31},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			base, err := Instruction(ir.NewInstruction(c.id))
			require.NoError(t, err)

			mutated := ir.NewInstruction(c.id)
			c.mutate(mutated)
			got, err := Instruction(mutated)
			require.NoError(t, err)

			assert.Equalf(t, c.wantMask, got^base,
				"flipped bits = %#08x, want %#08x", got^base, c.wantMask)
		})
	}
}

func TestInstructionsEncodesOnlyInstructionEntries(t *testing.T) {
	instEntry := ir.NewInstructionEntry(riscv.ADD)
	instEntry.Inst.Rdst, instEntry.Inst.Rsrc1, instEntry.Inst.Rsrc2 = 1, 2, 3
	defEntry := ir.NewEntry(ir.Definition, 0)

	list := &ir.BlockList{Blocks: []*ir.Block{{Entries: []*ir.Entry{instEntry, defEntry}}}}
	require.NoError(t, Instructions(list))
	assert.Equal(t, uint32(0x003100B3), instEntry.Encoding)
}
