// Package disasm renders an already-resolved instruction record as a
// human-readable mnemonic string, for diagnostic listings.
package disasm

import (
	"fmt"

	"github.com/gorv32/asm/pkg/ir"
	"github.com/gorv32/asm/pkg/riscv"
)

// SprintAsm formats inst using conventional RISC-V assembly syntax.
func SprintAsm(inst *ir.Instruction) string {
	switch inst.ID {
	case riscv.LUI:
		return fmt.Sprintf("lui x%d, 0x%x", inst.Rdst, inst.Imm)
	case riscv.AUIPC:
		return fmt.Sprintf("auipc x%d, 0x%x", inst.Rdst, inst.Imm)
	case riscv.JAL:
		return fmt.Sprintf("jal x%d, 0x%012x", inst.Rdst, inst.TargetAddress)
	case riscv.JALR:
		return fmt.Sprintf("jalr x%d, x%d, 0x%x", inst.Rdst, inst.Rsrc1, inst.Imm)
	case riscv.BEQ:
		return branch("beq", inst)
	case riscv.BNE:
		return branch("bne", inst)
	case riscv.BLT:
		return branch("blt", inst)
	case riscv.BGE:
		return branch("bge", inst)
	case riscv.BLTU:
		return branch("bltu", inst)
	case riscv.BGEU:
		return branch("bgeu", inst)
	case riscv.LB:
		return load("lb", inst)
	case riscv.LH:
		return load("lh", inst)
	case riscv.LW:
		return load("lw", inst)
	case riscv.LBU:
		return load("lbu", inst)
	case riscv.LHU:
		return load("lhu", inst)
	case riscv.SB:
		return store("sb", inst)
	case riscv.SH:
		return store("sh", inst)
	case riscv.SW:
		return store("sw", inst)
	case riscv.ADDI:
		if inst.Rdst == riscv.X0 && inst.Rsrc1 == riscv.X0 && inst.Imm == 0 {
			return "nop"
		}
		return aluImm("addi", inst)
	case riscv.SLTI:
		return aluImm("slti", inst)
	case riscv.SLTIU:
		return aluImm("sltiu", inst)
	case riscv.XORI:
		return aluImm("xori", inst)
	case riscv.ORI:
		return aluImm("ori", inst)
	case riscv.ANDI:
		return aluImm("andi", inst)
	case riscv.SLLI:
		return shiftImm("slli", inst)
	case riscv.SRLI:
		return shiftImm("srli", inst)
	case riscv.SRAI:
		return shiftImm("srai", inst)
	case riscv.ADD:
		return aluReg("add", inst)
	case riscv.SUB:
		return aluReg("sub", inst)
	case riscv.MUL:
		return aluReg("mul", inst)
	case riscv.DIV:
		return aluReg("div", inst)
	case riscv.SLL:
		return aluReg("sll", inst)
	case riscv.SLT:
		return aluReg("slt", inst)
	case riscv.SLTU:
		return aluReg("sltu", inst)
	case riscv.XOR:
		return aluReg("xor", inst)
	case riscv.SRL:
		return aluReg("srl", inst)
	case riscv.SRA:
		return aluReg("sra", inst)
	case riscv.OR:
		return aluReg("or", inst)
	case riscv.AND:
		return aluReg("and", inst)
	case riscv.ECALL:
		return "ecall"
	case riscv.EBREAK:
		return "ebreak"
	case riscv.J:
		return fmt.Sprintf("j 0x%012x", inst.TargetAddress)
	case riscv.JR:
		return fmt.Sprintf("jr 0x%012x", inst.TargetAddress)
	case riscv.RET:
		return "ret"
	default:
		return fmt.Sprintf("<unknown instruction %s>", inst.ID)
	}
}

func aluReg(mnemonic string, inst *ir.Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, x%d", mnemonic, inst.Rdst, inst.Rsrc1, inst.Rsrc2)
}

func aluImm(mnemonic string, inst *ir.Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, 0x%x", mnemonic, inst.Rdst, inst.Rsrc1, inst.Imm)
}

func shiftImm(mnemonic string, inst *ir.Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, 0x%x", mnemonic, inst.Rdst, inst.Rsrc1, inst.Rsrc2)
}

func branch(mnemonic string, inst *ir.Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, 0x%x", mnemonic, inst.Rsrc1, inst.Rsrc2, inst.Imm)
}

func load(mnemonic string, inst *ir.Instruction) string {
	return fmt.Sprintf("%s x%d, %d[x%d]", mnemonic, inst.Rdst, inst.Imm, inst.Rsrc1)
}

// store prints the S-type "value" operand, which the encoder reads from
// Rsrc2 (see encode.sType).
func store(mnemonic string, inst *ir.Instruction) string {
	return fmt.Sprintf("%s x%d, %d[x%d]", mnemonic, inst.Rsrc2, inst.Imm, inst.Rsrc1)
}
