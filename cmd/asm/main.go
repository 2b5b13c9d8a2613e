// Command asm drives the assembly pipeline end to end against a small
// program built directly through the pkg/asm builder API, since a text
// front end (lexer/parser) is outside this module's scope. It exists to
// exercise pkg/asm the way a real front end would: populate a program,
// assemble it, and emit it in one of the three supported formats.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorv32/asm/pkg/asm"
	"github.com/gorv32/asm/pkg/riscv"
)

var (
	format  string
	outPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "asm",
	Short:         "assemble the built-in demo program and emit it as elf, text, or bin",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := buildDemoProgram()
		if err != nil {
			return err
		}
		if err := prog.Assemble(); err != nil {
			return err
		}
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
			prog.Dump()
		}

		switch format {
		case "elf":
			// The executable comes out with owner rwx so it can be run
			// in place.
			return writeFile(outPath, 0o700, prog.WriteELF)
		case "text":
			return writeFile(outPath, 0o644, prog.WriteText)
		case "bin":
			return prog.WriteBin(func(i int) (io.WriteCloser, error) {
				return os.Create(fmt.Sprintf("%s-%d.bin", outPath, i))
			})
		default:
			return errors.Errorf("unknown --format %q, want elf, text, or bin", format)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&format, "format", "elf", "output format: elf, text, or bin")
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "a.out", "output file (base name for --format=bin)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log a disassembly listing before emitting")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		// Every error the library packages return surfaces here, never
		// recovered from mid-pipeline.
		logrus.WithError(err).Error("assembly failed")
		os.Exit(1)
	}
}

func writeFile(name string, perm os.FileMode, write func(io.Writer) error) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "creating %s", name)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", name)
}

// buildDemoProgram assembles a tiny self-contained program: it loads two
// immediates, adds them, and branches past an ECALL trap to the EBREAK at
// "done" (the BEQ compares x0 with x0, so it is always taken). It
// exercises the I, R and B instruction formats along with label
// resolution; no U-, S- or J-format instruction is used.
func buildDemoProgram() (*asm.Program, error) {
	prog := asm.NewProgram()
	block := prog.OpenBlock(0x10000)

	if err := block.Label("_start"); err != nil {
		return nil, err
	}

	addi1 := asm.NewInstruction(riscv.ADDI)
	addi1.Rdst, addi1.Rsrc1, addi1.Imm = 5, riscv.X0, 0x123
	block.Emit(addi1)

	addi2 := asm.NewInstruction(riscv.ADDI)
	addi2.Rdst, addi2.Rsrc1, addi2.Imm = 6, riscv.X0, 7
	block.Emit(addi2)

	add := asm.NewInstruction(riscv.ADD)
	add.Rdst, add.Rsrc1, add.Rsrc2 = 7, 5, 6
	block.Emit(add)

	beq := asm.NewInstruction(riscv.BEQ)
	beq.Rsrc1, beq.Rsrc2, beq.TargetName = 0, 0, "done"
	block.Emit(beq)

	ecall := asm.NewInstruction(riscv.ECALL)
	block.Emit(ecall)

	if err := block.Label("done"); err != nil {
		return nil, err
	}
	ebreak := asm.NewInstruction(riscv.EBREAK)
	block.Emit(ebreak)

	if err := block.Close(); err != nil {
		return nil, err
	}

	prog.Entry.Set(0x10000)
	return prog, nil
}
