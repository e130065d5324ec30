// registers.go - MIPS register name resolution

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

// registerNames maps every named MIPS register mnemonic to its 5-bit
// code. Numeric $0..$31 forms are handled by translateRegister.
var registerNames = map[string]uint8{
	"$zero": 0,
	"$at":   1,
	"$v0":   2,
	"$v1":   3,
	"$a0":   4,
	"$a1":   5,
	"$a2":   6,
	"$a3":   7,
	"$t0":   8,
	"$t1":   9,
	"$t2":   10,
	"$t3":   11,
	"$t4":   12,
	"$t5":   13,
	"$t6":   14,
	"$t7":   15,
	"$s0":   16,
	"$s1":   17,
	"$s2":   18,
	"$s3":   19,
	"$s4":   20,
	"$s5":   21,
	"$s6":   22,
	"$s7":   23,
	"$t8":   24,
	"$t9":   25,
	"$k0":   26,
	"$k1":   27,
	"$gp":   28,
	"$sp":   29,
	"$fp":   30,
	"$ra":   31,
}

// registerAliases is the canonical name for each register number, used
// by the disassembler.
var registerAliases = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// translateRegister resolves a register token to its 5-bit code.
// Accepted forms are the named aliases above and $0..$31. No partial
// matches.
func translateRegister(name string) (uint8, bool) {
	if n, ok := registerNames[name]; ok {
		return n, true
	}
	if len(name) < 2 || name[0] != '$' {
		return 0, false
	}
	n := 0
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 31 {
			return 0, false
		}
	}
	return uint8(n), true
}
