// pass_two.go - instruction encoding against the completed label table

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"math"
)

// Opcode and function-code constants for the supported subset.
const (
	functSll  = 0x00
	functJr   = 0x08
	functMfhi = 0x10
	functMflo = 0x12
	functMult = 0x18
	functDiv  = 0x1a
	functAddu = 0x21
	functOr   = 0x25
	functSlt  = 0x2a
	functSltu = 0x2b

	opJ     = 0x02
	opJal   = 0x03
	opBeq   = 0x04
	opBne   = 0x05
	opAddiu = 0x09
	opOri   = 0x0d
	opLui   = 0x0f
	opLb    = 0x20
	opLw    = 0x23
	opLbu   = 0x24
	opSb    = 0x28
	opSw    = 0x2b
)

// Branch displacement window: non-negative displacements up to 2^17
// bytes, negative displacements down to -(2^17 - 4). These bounds are
// exactly the byte displacements whose word offsets fit the signed
// 16-bit branch field.
const twoPowSeventeen = 131072

// translateInstruction performs pass two for one canonical instruction:
// it validates all operands against the completed label table and
// returns the encoded 32-bit word. A j/jal whose target is not in the
// label table encodes a zero target field and appends the patch site to
// the relocation table; that is the only path that writes to relocs.
// On error no word is produced and the caller continues with the next
// instruction.
func translateInstruction(in Instruction, addr uint32, labels, relocs *SymbolTable) (uint32, error) {
	switch in.Name {
	case "addu":
		return encodeRType(functAddu, in.Args)
	case "or":
		return encodeRType(functOr, in.Args)
	case "slt":
		return encodeRType(functSlt, in.Args)
	case "sltu":
		return encodeRType(functSltu, in.Args)
	case "sll":
		return encodeShift(functSll, in.Args)
	case "jr":
		return encodeJumpRegister(functJr, in.Args)
	case "mult":
		return encodeMulDiv(functMult, in.Args)
	case "div":
		return encodeMulDiv(functDiv, in.Args)
	case "mfhi":
		return encodeMoveFrom(functMfhi, in.Args)
	case "mflo":
		return encodeMoveFrom(functMflo, in.Args)
	case "addiu":
		return encodeImmArith(opAddiu, in.Args)
	case "ori":
		return encodeImmLogical(opOri, in.Args)
	case "lui":
		return encodeLoadUpper(opLui, in.Args)
	case "lb":
		return encodeMem(opLb, in.Args)
	case "lw":
		return encodeMem(opLw, in.Args)
	case "lbu":
		return encodeMem(opLbu, in.Args)
	case "sb":
		return encodeMem(opSb, in.Args)
	case "sw":
		return encodeMem(opSw, in.Args)
	case "beq":
		return encodeBranch(opBeq, in.Args, addr, labels)
	case "bne":
		return encodeBranch(opBne, in.Args, addr, labels)
	case "j":
		return encodeJump(opJ, in.Args, addr, labels, relocs)
	case "jal":
		return encodeJump(opJal, in.Args, addr, labels, relocs)
	}
	return 0, &Error{Kind: ErrUnknownInstruction, Name: in.Name, Addr: addr}
}

func resolveReg(token string) (uint32, error) {
	n, ok := translateRegister(token)
	if !ok {
		return 0, &Error{Kind: ErrUnknownRegister, Name: token}
	}
	return uint32(n), nil
}

// encodeRType packs rd, rs, rt as opcode(0)·rs·rt·rd·shamt(0)·funct.
func encodeRType(funct uint32, args []string) (uint32, error) {
	if len(args) != 3 {
		return 0, badArgCount("r-type", 3, len(args))
	}
	rd, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rs, err := resolveReg(args[1])
	if err != nil {
		return 0, err
	}
	rt, err := resolveReg(args[2])
	if err != nil {
		return 0, err
	}
	return rs<<21 | rt<<16 | rd<<11 | funct, nil
}

// encodeShift packs rd, rt, shamt as opcode(0)·rs(0)·rt·rd·shamt·funct.
func encodeShift(funct uint32, args []string) (uint32, error) {
	if len(args) != 3 {
		return 0, badArgCount("shift", 3, len(args))
	}
	rd, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rt, err := resolveReg(args[1])
	if err != nil {
		return 0, err
	}
	shamt, err := translateNum(args[2], 0, 31)
	if err != nil {
		return 0, err
	}
	return rt<<16 | rd<<11 | uint32(shamt)<<6 | funct, nil
}

// encodeJumpRegister packs rs as opcode(0)·rs·0·0·0·funct.
func encodeJumpRegister(funct uint32, args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, badArgCount("jr", 1, len(args))
	}
	rs, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	return rs<<21 | funct, nil
}

// encodeMulDiv packs the two-operand multiply/divide forms
// (mult rs, rt and div rs, rt) as opcode(0)·rs·rt·0·0·funct.
func encodeMulDiv(funct uint32, args []string) (uint32, error) {
	if len(args) != 2 {
		return 0, badArgCount("mult/div", 2, len(args))
	}
	rs, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rt, err := resolveReg(args[1])
	if err != nil {
		return 0, err
	}
	return rs<<21 | rt<<16 | funct, nil
}

// encodeMoveFrom packs the result-extraction moves (mfhi rd, mflo rd)
// as opcode(0)·0·0·rd·0·funct.
func encodeMoveFrom(funct uint32, args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, badArgCount("mfhi/mflo", 1, len(args))
	}
	rd, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	return rd<<11 | funct, nil
}

// encodeImmArith handles addiu rt, rs, imm. The immediate is parsed
// over the full signed 32-bit range and must then fit the signed 16-bit
// field; a value that does not fit is an error, never a truncation.
func encodeImmArith(opcode uint32, args []string) (uint32, error) {
	if len(args) != 3 {
		return 0, badArgCount("addiu", 3, len(args))
	}
	rt, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rs, err := resolveReg(args[1])
	if err != nil {
		return 0, err
	}
	imm, err := translateNum(args[2], math.MinInt32, math.MaxInt32)
	if err != nil {
		return 0, err
	}
	if imm < -32768 || imm > 32767 {
		return 0, &Error{Kind: ErrUnrepresentableImmediate, Name: args[2]}
	}
	return opcode<<26 | rs<<21 | rt<<16 | uint32(imm)&0xffff, nil
}

// encodeImmLogical handles ori rt, rs, imm with a zero-extended
// immediate.
func encodeImmLogical(opcode uint32, args []string) (uint32, error) {
	if len(args) != 3 {
		return 0, badArgCount("ori", 3, len(args))
	}
	rt, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rs, err := resolveReg(args[1])
	if err != nil {
		return 0, err
	}
	imm, err := translateNum(args[2], 0, math.MaxUint32)
	if err != nil {
		return 0, err
	}
	if imm > 0xffff {
		return 0, &Error{Kind: ErrUnrepresentableImmediate, Name: args[2]}
	}
	return opcode<<26 | rs<<21 | rt<<16 | uint32(imm), nil
}

// encodeLoadUpper handles lui rt, imm. The immediate may be written in
// either 32-bit interpretation; the low 16 bits are encoded.
func encodeLoadUpper(opcode uint32, args []string) (uint32, error) {
	if len(args) != 2 {
		return 0, badArgCount("lui", 2, len(args))
	}
	rt, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	imm, err := translateNum(args[1], math.MinInt32, math.MaxUint32)
	if err != nil {
		return 0, err
	}
	return opcode<<26 | rt<<16 | uint32(imm)&0xffff, nil
}

// encodeMem handles the load/store forms rt, offset, rs where rs is the
// base register and offset a signed 16-bit displacement.
func encodeMem(opcode uint32, args []string) (uint32, error) {
	if len(args) != 3 {
		return 0, badArgCount("load/store", 3, len(args))
	}
	rt, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rs, err := resolveReg(args[2])
	if err != nil {
		return 0, err
	}
	off, err := translateNum(args[1], math.MinInt32, math.MaxInt32)
	if err != nil {
		return 0, err
	}
	if off < -32768 || off > 32767 {
		return 0, &Error{Kind: ErrUnrepresentableImmediate, Name: args[1]}
	}
	return opcode<<26 | rs<<21 | rt<<16 | uint32(off)&0xffff, nil
}

// canBranchTo reports whether the displacement from src to dest is
// representable in the signed 16-bit word-offset branch field.
func canBranchTo(src, dest uint32) bool {
	diff := int32(dest) - int32(src)
	return (diff >= 0 && diff <= twoPowSeventeen) ||
		(diff < 0 && diff >= -(twoPowSeventeen-4))
}

// encodeBranch handles beq/bne rs, rt, label. The offset is PC-relative
// to the instruction after the branch, in words.
func encodeBranch(opcode uint32, args []string, addr uint32, labels *SymbolTable) (uint32, error) {
	if len(args) != 3 {
		return 0, badArgCount("branch", 3, len(args))
	}
	rs, err := resolveReg(args[0])
	if err != nil {
		return 0, err
	}
	rt, err := resolveReg(args[1])
	if err != nil {
		return 0, err
	}
	target, ok := labels.Lookup(args[2])
	if !ok {
		return 0, &Error{Kind: ErrUndefinedSymbol, Name: args[2], Addr: addr}
	}
	if !canBranchTo(addr, target) {
		return 0, &Error{Kind: ErrUnreachableBranch, Name: args[2], Addr: addr}
	}
	diff := int32(target) - int32(addr) - 4
	if diff%4 != 0 {
		return 0, &Error{Kind: ErrMisalignedTarget, Name: args[2], Addr: addr}
	}
	offset := uint32(diff/4) & 0xffff
	return opcode<<26 | rs<<21 | rt<<16 | offset, nil
}

// encodeJump handles j/jal label. A target already in the label table
// is embedded directly; an unresolved target encodes a zero field and
// records the patch site (this instruction's own address) in the
// relocation table.
func encodeJump(opcode uint32, args []string, addr uint32, labels, relocs *SymbolTable) (uint32, error) {
	if len(args) != 1 {
		return 0, badArgCount("jump", 1, len(args))
	}
	if target, ok := labels.Lookup(args[0]); ok {
		return opcode<<26 | (target/4)&0x3ffffff, nil
	}
	if err := relocs.Insert(args[0], addr); err != nil {
		return 0, err
	}
	return opcode << 26, nil
}
