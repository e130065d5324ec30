// driver.go - tokenizer, two-pass orchestration and object output

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
	"strings"
)

// Assembler drives the two passes over one source text. Each instance
// owns its tables and diagnostic handle; instances are independent and
// single-threaded.
type Assembler struct {
	cfg  Config
	diag *Diag
}

func NewAssembler(cfg Config, diag *Diag) *Assembler {
	return &Assembler{cfg: cfg, diag: diag}
}

// Object is the result of a complete assembly: the encoded words, the
// label table, the relocation table, and the post-expansion
// intermediate listing.
type Object struct {
	Words        []uint32
	Labels       *SymbolTable
	Relocs       *SymbolTable
	Intermediate []Instruction
}

// codeInstruction ties a canonical instruction to its address and the
// source line it came from, for pass two and its diagnostics.
type codeInstruction struct {
	inst Instruction
	addr uint32
	line int
}

// tokenizeLine splits one source line into an optional label, an
// instruction name and its arguments. Comments start with '#'. A label
// is a leading token terminated by ':' and may share the line with an
// instruction. Arguments are separated by commas and/or whitespace;
// parentheses in memory operands like 4($sp) act as separators too, so
// the offset and base register arrive as distinct arguments.
func tokenizeLine(line string) (label, name string, args []string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", nil
	}
	if i := strings.IndexByte(line, ':'); i >= 0 {
		head := strings.TrimSpace(line[:i])
		if head != "" && !strings.ContainsAny(head, " \t") {
			label = head
			line = strings.TrimSpace(line[i+1:])
		}
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '(' || r == ')'
	})
	if len(fields) == 0 {
		return label, "", nil
	}
	return label, fields[0], fields[1:]
}

// Assemble runs both passes over src. Pass one expands
// pseudo-instructions, advances the address counter by four bytes per
// emitted instruction and records labels at the address their line
// started at. Pass two runs only after the label table is complete, so
// forward references resolve. Errors are reported to the diagnostic
// handle and accumulate; a failed line contributes zero output words
// and processing continues. The returned Object is always non-nil; the
// error is non-nil if any line failed, in which case the output must
// not be treated as valid object code.
func (a *Assembler) Assemble(src string) (*Object, error) {
	labels := NewSymbolTable(TableUniqueName)
	relocs := NewSymbolTable(TableNonUnique)

	var code []codeInstruction
	addr := a.cfg.TextStart
	failed := 0

	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		label, name, args := tokenizeLine(raw)
		if label != "" {
			if err := labels.Insert(label, addr); err != nil {
				a.diag.ReportLine(lineNo, err)
				failed++
			}
		}
		if name == "" {
			continue
		}
		seq, err := expandInstruction(name, args)
		if err != nil {
			a.diag.ReportLine(lineNo, err)
			failed++
			continue
		}
		for _, in := range seq {
			code = append(code, codeInstruction{inst: in, addr: addr, line: lineNo})
			addr += 4
		}
	}

	obj := &Object{
		Words:        make([]uint32, 0, len(code)),
		Labels:       labels,
		Relocs:       relocs,
		Intermediate: make([]Instruction, 0, len(code)),
	}
	for _, ci := range code {
		obj.Intermediate = append(obj.Intermediate, ci.inst)
		word, err := translateInstruction(ci.inst, ci.addr, labels, relocs)
		if err != nil {
			a.diag.ReportLine(ci.line, err)
			failed++
			continue
		}
		obj.Words = append(obj.Words, word)
	}

	if failed > 0 {
		return obj, fmt.Errorf("assembly failed with %d error(s)", failed)
	}
	return obj, nil
}

// WriteObject writes the sectioned object file: the encoded words, the
// label table and the relocation table.
func (o *Object) WriteObject(w io.Writer) error {
	if _, err := fmt.Fprintln(w, ".text"); err != nil {
		return err
	}
	for _, word := range o.Words {
		if _, err := fmt.Fprintf(w, "%08x\n", word); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ".symbol"); err != nil {
		return err
	}
	if _, err := o.Labels.WriteTo(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ".relocation"); err != nil {
		return err
	}
	_, err := o.Relocs.WriteTo(w)
	return err
}

// WriteIntermediate writes the post-expansion listing, one canonical
// instruction per line.
func (o *Object) WriteIntermediate(w io.Writer) error {
	for _, in := range o.Intermediate {
		if _, err := fmt.Fprintln(w, in.String()); err != nil {
			return err
		}
	}
	return nil
}
