// diag.go

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"io"
)

// ErrorKind classifies every non-fatal failure the translation core can
// produce. Allocation exhaustion is not modelled: the Go runtime aborts
// the process, which is the required behaviour.
type ErrorKind int

const (
	ErrMisalignedAddress ErrorKind = iota
	ErrDuplicateName
	ErrBadArgumentCount
	ErrUnknownRegister
	ErrNumberOutOfRange
	ErrUnrepresentableImmediate
	ErrUndefinedSymbol
	ErrMisalignedTarget
	ErrUnreachableBranch
	ErrUnknownInstruction
)

// Error carries the failure kind plus enough context (symbol or token
// name, instruction address) for the caller to format a diagnostic.
type Error struct {
	Kind   ErrorKind
	Name   string
	Addr   uint32
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMisalignedAddress:
		return "address is not a multiple of 4."
	case ErrDuplicateName:
		return fmt.Sprintf("name '%s' already exists in table.", e.Name)
	case ErrBadArgumentCount:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("wrong number of arguments for '%s'", e.Name)
	case ErrUnknownRegister:
		return fmt.Sprintf("invalid register '%s'", e.Name)
	case ErrNumberOutOfRange:
		if e.Detail != "" {
			return fmt.Sprintf("invalid number '%s': %s", e.Name, e.Detail)
		}
		return fmt.Sprintf("invalid number '%s'", e.Name)
	case ErrUnrepresentableImmediate:
		return fmt.Sprintf("immediate '%s' does not fit in 16 bits", e.Name)
	case ErrUndefinedSymbol:
		return fmt.Sprintf("undefined symbol '%s'", e.Name)
	case ErrMisalignedTarget:
		return fmt.Sprintf("branch target '%s' is not word-aligned", e.Name)
	case ErrUnreachableBranch:
		return fmt.Sprintf("branch target '%s' is out of range", e.Name)
	case ErrUnknownInstruction:
		return fmt.Sprintf("unknown instruction '%s'", e.Name)
	}
	return "unknown error"
}

// errorKind extracts the ErrorKind from err, or -1 if err is not an
// *Error from this package.
func errorKind(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return -1
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Diag is an explicit diagnostic sink. Every assembly run owns its own
// handle, so multiple assemblies can run in one process without
// cross-talk. The zero value is not usable; use NewDiag.
type Diag struct {
	w      io.Writer
	color  bool
	errors int
}

func NewDiag(w io.Writer, color bool) *Diag {
	return &Diag{w: w, color: color}
}

// Report writes one diagnostic for err and bumps the error count.
func (d *Diag) Report(err error) {
	d.errors++
	fmt.Fprintf(d.w, "%s %v\n", d.prefix(), err)
}

// ReportLine is Report with source-line context.
func (d *Diag) ReportLine(line int, err error) {
	d.errors++
	fmt.Fprintf(d.w, "%s line %d: %v\n", d.prefix(), line, err)
}

func (d *Diag) prefix() string {
	if d.color {
		return ansiRed + "Error:" + ansiReset
	}
	return "Error:"
}

// ErrorCount returns how many diagnostics have been reported.
func (d *Diag) ErrorCount() int {
	return d.errors
}
