// numbers.go - numeric literal parsing with range validation

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"strconv"
	"strings"
)

// translateNum parses a decimal (optionally signed) or 0x-prefixed
// hexadecimal literal and checks it against the inclusive range
// [min, max]. The bounds are int64 so callers can validate signed and
// unsigned 32-bit interpretations uniformly. Trailing non-numeric
// characters are an error; values are never truncated to fit.
func translateNum(token string, min, max int64) (int64, error) {
	if token == "" || strings.ContainsRune(token, '_') {
		return 0, &Error{Kind: ErrNumberOutOfRange, Name: token}
	}
	val, err := strconv.ParseInt(token, 0, 64)
	if err != nil {
		return 0, &Error{Kind: ErrNumberOutOfRange, Name: token}
	}
	if val < min || val > max {
		return 0, &Error{
			Kind:   ErrNumberOutOfRange,
			Name:   token,
			Detail: "value out of range",
		}
	}
	return val, nil
}
