// disasm.go - 32-bit word decoding for the supported subset

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
)

var functNames = map[uint32]string{
	functSll:  "sll",
	functJr:   "jr",
	functMfhi: "mfhi",
	functMflo: "mflo",
	functMult: "mult",
	functDiv:  "div",
	functAddu: "addu",
	functOr:   "or",
	functSlt:  "slt",
	functSltu: "sltu",
}

var opcodeMnemonics = map[uint32]string{
	opJ:     "j",
	opJal:   "jal",
	opBeq:   "beq",
	opBne:   "bne",
	opAddiu: "addiu",
	opOri:   "ori",
	opLui:   "lui",
	opLb:    "lb",
	opLw:    "lw",
	opLbu:   "lbu",
	opSb:    "sb",
	opSw:    "sw",
}

// instructionFields is the exploded view of one encoded word.
type instructionFields struct {
	opcode uint32
	rs     uint32
	rt     uint32
	rd     uint32
	shamt  uint32
	funct  uint32
	imm    uint32 // low 16 bits, not sign-extended
	target uint32 // low 26 bits
}

func extractFields(word uint32) instructionFields {
	return instructionFields{
		opcode: word >> 26,
		rs:     word >> 21 & 0x1f,
		rt:     word >> 16 & 0x1f,
		rd:     word >> 11 & 0x1f,
		shamt:  word >> 6 & 0x1f,
		funct:  word & 0x3f,
		imm:    word & 0xffff,
		target: word & 0x3ffffff,
	}
}

// signExtend16 widens the 16-bit immediate field to a signed value.
func signExtend16(imm uint32) int32 {
	return int32(int16(imm))
}

// disassembleWord decodes one word at addr back to assembler syntax.
// Branch and jump operands are rendered as absolute hex addresses.
// Words outside the supported subset come back as raw data.
func disassembleWord(word, addr uint32) string {
	f := extractFields(word)
	if f.opcode == 0 {
		name, ok := functNames[f.funct]
		if !ok {
			return fmt.Sprintf(".word 0x%08x", word)
		}
		switch f.funct {
		case functSll:
			return fmt.Sprintf("%s %s, %s, %d", name, registerAliases[f.rd], registerAliases[f.rt], f.shamt)
		case functJr:
			return fmt.Sprintf("%s %s", name, registerAliases[f.rs])
		case functMfhi, functMflo:
			return fmt.Sprintf("%s %s", name, registerAliases[f.rd])
		case functMult, functDiv:
			return fmt.Sprintf("%s %s, %s", name, registerAliases[f.rs], registerAliases[f.rt])
		default:
			return fmt.Sprintf("%s %s, %s, %s", name, registerAliases[f.rd], registerAliases[f.rs], registerAliases[f.rt])
		}
	}
	name, ok := opcodeMnemonics[f.opcode]
	if !ok {
		return fmt.Sprintf(".word 0x%08x", word)
	}
	switch f.opcode {
	case opJ, opJal:
		return fmt.Sprintf("%s 0x%x", name, f.target*4)
	case opBeq, opBne:
		target := addr + 4 + uint32(signExtend16(f.imm))*4
		return fmt.Sprintf("%s %s, %s, 0x%x", name, registerAliases[f.rs], registerAliases[f.rt], target)
	case opAddiu:
		return fmt.Sprintf("%s %s, %s, %d", name, registerAliases[f.rt], registerAliases[f.rs], signExtend16(f.imm))
	case opLui:
		return fmt.Sprintf("%s %s, %d", name, registerAliases[f.rt], f.imm)
	case opOri:
		return fmt.Sprintf("%s %s, %s, %d", name, registerAliases[f.rt], registerAliases[f.rs], f.imm)
	default: // memory
		return fmt.Sprintf("%s %s, %d(%s)", name, registerAliases[f.rt], signExtend16(f.imm), registerAliases[f.rs])
	}
}

// disassembleProgram writes an address/word/mnemonic listing for words
// loaded at base.
func disassembleProgram(words []uint32, base uint32, w io.Writer) error {
	for i, word := range words {
		addr := base + uint32(i)*4
		if _, err := fmt.Fprintf(w, "%08x:  %08x  %s\n", addr, word, disassembleWord(word, addr)); err != nil {
			return err
		}
	}
	return nil
}
