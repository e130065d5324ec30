// pass_one.go - pseudo-instruction expansion

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Instruction is one canonical (post-expansion) instruction. It is
// never mutated after creation and is consumed exactly once by the
// encoder.
type Instruction struct {
	Name string
	Args []string
}

func (in Instruction) String() string {
	if len(in.Args) == 0 {
		return in.Name
	}
	return in.Name + " " + strings.Join(in.Args, " ")
}

func inst(name string, args ...string) Instruction {
	return Instruction{Name: name, Args: args}
}

func badArgCount(name string, want, got int) error {
	return &Error{
		Kind:   ErrBadArgumentCount,
		Name:   name,
		Detail: fmt.Sprintf("'%s' expects %d arguments, got %d", name, want, got),
	}
}

// expandInstruction performs pass one for a single source instruction:
// pseudo-instructions expand to their minimal real-instruction
// sequence, everything else passes through unchanged for pass two to
// validate. On error nothing is emitted; the caller reports the error
// and continues with the next line. The expansions have no side
// effects beyond the emitted instructions — the only register they may
// clobber beyond the given operands is the $at scratch register, and
// no later instruction may assume anything about its contents.
func expandInstruction(name string, args []string) ([]Instruction, error) {
	switch name {
	case "move":
		// move rd, rs -> addu rd, rs, $0
		if len(args) != 2 {
			return nil, badArgCount(name, 2, len(args))
		}
		return []Instruction{inst("addu", args[0], args[1], "$0")}, nil

	case "li":
		if len(args) != 2 {
			return nil, badArgCount(name, 2, len(args))
		}
		// Valid if representable as either signed or unsigned 32-bit;
		// the union is the contiguous range [-2^31, 2^32-1].
		val, err := translateNum(args[1], math.MinInt32, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		if val >= -32768 && val <= 32767 {
			return []Instruction{inst("addiu", args[0], "$0", args[1])}, nil
		}
		bits := uint32(val)
		hi := strconv.FormatUint(uint64(bits>>16), 10)
		lo := strconv.FormatUint(uint64(bits&0xffff), 10)
		return []Instruction{
			inst("lui", "$at", hi),
			inst("ori", args[0], "$at", lo),
		}, nil

	case "blt":
		// blt rs, rt, label -> slt $at, rs, rt; bne $at, $0, label
		if len(args) != 3 {
			return nil, badArgCount(name, 3, len(args))
		}
		return []Instruction{
			inst("slt", "$at", args[0], args[1]),
			inst("bne", "$at", "$0", args[2]),
		}, nil

	case "bgt":
		// bgt rs, rt, label -> slt $at, rt, rs; bne $at, $0, label
		if len(args) != 3 {
			return nil, badArgCount(name, 3, len(args))
		}
		return []Instruction{
			inst("slt", "$at", args[1], args[0]),
			inst("bne", "$at", "$0", args[2]),
		}, nil

	case "mul":
		// mul rd, rs, rt -> mult rs, rt; mflo rd
		if len(args) != 3 {
			return nil, badArgCount(name, 3, len(args))
		}
		return []Instruction{
			inst("mult", args[1], args[2]),
			inst("mflo", args[0]),
		}, nil

	case "div":
		// div rd, rs, rt -> div rs, rt; mflo rd
		if len(args) != 3 {
			return nil, badArgCount(name, 3, len(args))
		}
		return []Instruction{
			inst("div", args[1], args[2]),
			inst("mflo", args[0]),
		}, nil

	case "rem":
		// rem rd, rs, rt -> div rs, rt; mfhi rd
		if len(args) != 3 {
			return nil, badArgCount(name, 3, len(args))
		}
		return []Instruction{
			inst("div", args[1], args[2]),
			inst("mfhi", args[0]),
		}, nil

	case "traddu":
		// traddu rd, rs, rt -> addu $at, rs, rt; addu rd, rd, $at
		// The $at intermediate keeps the sum correct when rd aliases
		// rs or rt.
		if len(args) != 3 {
			return nil, badArgCount(name, 3, len(args))
		}
		return []Instruction{
			inst("addu", "$at", args[1], args[2]),
			inst("addu", args[0], args[0], "$at"),
		}, nil

	case "swpr":
		// swpr rs, rt -> three-move swap through $at
		if len(args) != 2 {
			return nil, badArgCount(name, 2, len(args))
		}
		return []Instruction{
			inst("addu", "$at", args[0], "$0"),
			inst("addu", args[0], args[1], "$0"),
			inst("addu", args[1], "$at", "$0"),
		}, nil
	}

	// Not a pseudo-instruction: pass through as a single real
	// instruction. Operand validation happens in pass two.
	return []Instruction{{Name: name, Args: args}}, nil
}
