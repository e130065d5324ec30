// main.go - command-line entry point

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagOutput  string
	flagConfig  string
	flagIntFile bool
	flagDisBase uint32
	flagNoColor bool
)

func loadRunConfig() (Config, error) {
	if flagConfig != "" {
		return LoadConfig(flagConfig)
	}
	return DefaultConfig(), nil
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

var rootCmd = &cobra.Command{
	Use:           "mipsasm",
	Short:         "Two-pass assembler for a MIPS subset",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var asmCmd = &cobra.Command{
	Use:   "asm <input.s>",
	Short: "Assemble a source file into an object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		color := cfg.Color && !flagNoColor && stderrIsTerminal()
		diag := NewDiag(os.Stderr, color)
		asm := NewAssembler(cfg, diag)
		obj, asmErr := asm.Assemble(string(src))

		outPath := flagOutput
		if outPath == "" {
			outPath = strings.TrimSuffix(args[0], ".s") + ".out"
		}
		if asmErr == nil {
			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()
			bw := bufio.NewWriter(out)
			if err := obj.WriteObject(bw); err != nil {
				return err
			}
			if err := bw.Flush(); err != nil {
				return err
			}
			if flagIntFile || cfg.EmitIntermediate {
				intPath := strings.TrimSuffix(outPath, ".out") + ".int"
				f, err := os.Create(intPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := obj.WriteIntermediate(f); err != nil {
					return err
				}
			}
			fmt.Printf("assembled %d instructions to %s\n", len(obj.Words), outPath)
		}
		return asmErr
	},
}

var disCmd = &cobra.Command{
	Use:   "dis <object>",
	Short: "Disassemble the .text section of an object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		words, err := parseTextSection(string(data))
		if err != nil {
			return err
		}
		return disassembleProgram(words, flagDisBase, os.Stdout)
	},
}

// parseTextSection reads the hex words of an object file's .text
// section. A file with no section headers is treated as bare hex
// words, one per line.
func parseTextSection(data string) ([]uint32, error) {
	var words []uint32
	inText := true
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			inText = line == ".text"
			continue
		}
		if !inText {
			continue
		}
		w, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad word %q: %w", line, err)
		}
		words = append(words, uint32(w))
	}
	return words, nil
}

func init() {
	asmCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "object file path (default: input with .out extension)")
	asmCmd.Flags().BoolVar(&flagIntFile, "int", false, "also write the post-expansion intermediate listing")
	asmCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML config file")
	asmCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colored diagnostics")
	disCmd.Flags().Uint32Var(&flagDisBase, "base", 0, "load address of the first word")
	rootCmd.AddCommand(asmCmd, disCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mipsasm: %v\n", err)
		os.Exit(1)
	}
}
