// symbol_table.go - ordered symbol and relocation tables

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
)

// TableMode selects the uniqueness rule for a SymbolTable.
type TableMode int

const (
	// TableNonUnique permits duplicate names. Used for the relocation
	// table, where several call sites may reference the same external
	// symbol.
	TableNonUnique TableMode = iota
	// TableUniqueName rejects duplicate names. Used for the label table.
	TableUniqueName
)

// Symbol is one table entry: a name and its 32-bit byte address.
type Symbol struct {
	Name string
	Addr uint32
}

// SymbolTable is an append-only, insertion-ordered sequence of symbols.
// Serialization reproduces insertion order exactly. A table has exactly
// one writer during its owning pass and is read-only afterwards.
type SymbolTable struct {
	mode TableMode
	syms []Symbol
}

func NewSymbolTable(mode TableMode) *SymbolTable {
	return &SymbolTable{mode: mode}
}

// Insert appends name/addr. The address must be word-aligned; in
// TableUniqueName mode the name must not already be present. Go strings
// are immutable, so storing the argument satisfies the copy-on-insert
// contract without an explicit copy.
func (t *SymbolTable) Insert(name string, addr uint32) error {
	if addr%4 != 0 {
		return &Error{Kind: ErrMisalignedAddress, Name: name, Addr: addr}
	}
	if t.mode == TableUniqueName {
		for _, s := range t.syms {
			if s.Name == name {
				return &Error{Kind: ErrDuplicateName, Name: name, Addr: addr}
			}
		}
	}
	t.syms = append(t.syms, Symbol{Name: name, Addr: addr})
	return nil
}

// Lookup returns the address of the first entry named name, in
// insertion order.
func (t *SymbolTable) Lookup(name string) (uint32, bool) {
	for _, s := range t.syms {
		if s.Name == name {
			return s.Addr, true
		}
	}
	return 0, false
}

// Len returns the number of entries.
func (t *SymbolTable) Len() int {
	return len(t.syms)
}

// Symbols returns the entries in insertion order. The caller must not
// mutate the returned slice.
func (t *SymbolTable) Symbols() []Symbol {
	return t.syms
}

// WriteTo serializes the table, one "<decimal address>\t<name>" line
// per symbol, in insertion order, with no extra whitespace.
func (t *SymbolTable) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range t.syms {
		n, err := fmt.Fprintf(w, "%d\t%s\n", s.Addr, s.Name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
