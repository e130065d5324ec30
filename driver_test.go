// driver_test.go

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func newTestAssembler() (*Assembler, *bytes.Buffer) {
	var buf bytes.Buffer
	diag := NewDiag(&buf, false)
	return NewAssembler(DefaultConfig(), diag), &buf
}

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		line  string
		label string
		name  string
		args  []string
	}{
		{"", "", "", nil},
		{"   ", "", "", nil},
		{"# just a comment", "", "", nil},
		{"addu $t0, $t1, $t2", "", "addu", []string{"$t0", "$t1", "$t2"}},
		{"addu $t0 $t1 $t2", "", "addu", []string{"$t0", "$t1", "$t2"}},
		{"loop:", "loop", "", nil},
		{"loop: bne $t0, $0, loop", "loop", "bne", []string{"$t0", "$0", "loop"}},
		{"lw $t0, 4($sp)", "", "lw", []string{"$t0", "4", "$sp"}},
		{"sw $ra, -8($fp) # save", "", "sw", []string{"$ra", "-8", "$fp"}},
		{"jr $ra", "", "jr", []string{"$ra"}},
		{"\tli $t0, 0x10", "", "li", []string{"$t0", "0x10"}},
	}
	for _, tc := range tests {
		label, name, args := tokenizeLine(tc.line)
		if label != tc.label || name != tc.name {
			t.Errorf("tokenizeLine(%q) = %q, %q; want %q, %q", tc.line, label, name, tc.label, tc.name)
		}
		if len(args) != len(tc.args) {
			t.Errorf("tokenizeLine(%q) args = %v, want %v", tc.line, args, tc.args)
			continue
		}
		for i := range args {
			if args[i] != tc.args[i] {
				t.Errorf("tokenizeLine(%q) args = %v, want %v", tc.line, args, tc.args)
				break
			}
		}
	}
}

const testProgram = `# demo program
main:	li $t0, 100
	li $t1, 432096
loop:	addu $t0, $t0, $t1
	bne $t0, $0, loop
	jal external
	jr $ra
`

func TestAssembleProgram(t *testing.T) {
	asm, diagBuf := newTestAssembler()
	obj, err := asm.Assemble(testProgram)
	if err != nil {
		t.Fatalf("Assemble failed: %v\ndiagnostics:\n%s", err, diagBuf.String())
	}

	want := []uint32{
		0x24080064, // addiu $t0, $0, 100
		0x3c010006, // lui $at, 6
		0x342997e0, // ori $t1, $at, 38880
		0x01094021, // addu $t0, $t0, $t1
		0x1500fffe, // bne $t0, $0, loop (offset -2)
		0x0c000000, // jal external (relocated)
		0x03e00008, // jr $ra
	}
	if !reflect.DeepEqual(obj.Words, want) {
		t.Errorf("words = %08x\nwant    %08x", obj.Words, want)
	}

	if addr, ok := obj.Labels.Lookup("main"); !ok || addr != 0 {
		t.Errorf("main = %d, %v; want 0, true", addr, ok)
	}
	if addr, ok := obj.Labels.Lookup("loop"); !ok || addr != 12 {
		t.Errorf("loop = %d, %v; want 12, true", addr, ok)
	}

	syms := obj.Relocs.Symbols()
	if len(syms) != 1 || syms[0].Name != "external" || syms[0].Addr != 20 {
		t.Errorf("relocations = %v, want [{external 20}]", syms)
	}

	if len(obj.Intermediate) != 7 {
		t.Errorf("intermediate instructions = %d, want 7", len(obj.Intermediate))
	}
}

func TestForwardReference(t *testing.T) {
	asm, _ := newTestAssembler()
	obj, err := asm.Assemble("	beq $0, $0, done\n	addu $t0, $t0, $t1\ndone:	jr $ra\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	// done is at 8; branch at 0 has displacement 8-4 = 4, offset 1.
	if obj.Words[0]&0xffff != 1 {
		t.Errorf("forward branch offset = %#x, want 1", obj.Words[0]&0xffff)
	}
}

func TestAssembleAccumulatesErrors(t *testing.T) {
	src := strings.Join([]string{
		"	li $t0",             // pass one: wrong arg count
		"	addu $t0, $t1, $t2", // fine
		"	addiu $t0, $t1, 70000", // pass two: immediate too wide
		"	jr $ra", // fine
	}, "\n")

	asm, diagBuf := newTestAssembler()
	obj, err := asm.Assemble(src)
	if err == nil {
		t.Fatal("Assemble should report failure")
	}
	if got := strings.Count(diagBuf.String(), "Error:"); got != 2 {
		t.Errorf("diagnostics = %d, want 2:\n%s", got, diagBuf.String())
	}
	// Failed lines contribute zero words; the rest still assemble.
	if len(obj.Words) != 2 {
		t.Errorf("words = %d, want 2", len(obj.Words))
	}
}

func TestDuplicateLabelContinues(t *testing.T) {
	asm, diagBuf := newTestAssembler()
	obj, err := asm.Assemble("a:	jr $ra\na:	jr $ra\n")
	if err == nil {
		t.Fatal("duplicate label should fail the run")
	}
	if !strings.Contains(diagBuf.String(), "name 'a' already exists in table.") {
		t.Errorf("missing duplicate-name diagnostic:\n%s", diagBuf.String())
	}
	// Both instructions still encode.
	if len(obj.Words) != 2 {
		t.Errorf("words = %d, want 2", len(obj.Words))
	}
}

func TestWriteObject(t *testing.T) {
	asm, _ := newTestAssembler()
	obj, err := asm.Assemble("entry:	jal external\n	jr $ra\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	var buf bytes.Buffer
	if err := obj.WriteObject(&buf); err != nil {
		t.Fatalf("WriteObject failed: %v", err)
	}
	want := ".text\n" +
		"0c000000\n" +
		"03e00008\n" +
		".symbol\n" +
		"0\tentry\n" +
		".relocation\n" +
		"0\texternal\n"
	if buf.String() != want {
		t.Errorf("object = %q\nwant     %q", buf.String(), want)
	}
}

func TestWriteIntermediate(t *testing.T) {
	asm, _ := newTestAssembler()
	obj, err := asm.Assemble("	li $t1, 432096\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	var buf bytes.Buffer
	if err := obj.WriteIntermediate(&buf); err != nil {
		t.Fatalf("WriteIntermediate failed: %v", err)
	}
	want := "lui $at 6\nori $t1 $at 38880\n"
	if buf.String() != want {
		t.Errorf("intermediate = %q, want %q", buf.String(), want)
	}
}

func TestTextStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextStart = 0x40
	var buf bytes.Buffer
	asm := NewAssembler(cfg, NewDiag(&buf, false))

	obj, err := asm.Assemble("main:	j main\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if addr, ok := obj.Labels.Lookup("main"); !ok || addr != 0x40 {
		t.Errorf("main = %#x, %v; want 0x40, true", addr, ok)
	}
	if obj.Words[0] != opJ<<26|0x10 {
		t.Errorf("j main = %08x, want target field 0x10", obj.Words[0])
	}
}
