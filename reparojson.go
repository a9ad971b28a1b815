// Copyright (C) 2024 nsfisis. All Rights Reserved.

package reparojson

import (
	"errors"
	"fmt"
	"io"
)

// Result reports the outcome of a successful Repair call.
type Result int

// Constants defining the valid Result values.
const (
	Valid    Result = iota + 1 // the input was well-formed; output == input
	Repaired                   // well-formed after at least one comma correction
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Repaired:
		return "repaired"
	}
	return "invalid result"
}

// Sentinel values for the syntax failures reported by Repair. Errors returned
// by Repair wrap these; use errors.Is to test for them.
var (
	// ErrUnexpectedEOF means the grammar required another byte but the input
	// was exhausted.
	ErrUnexpectedEOF = errors.New("unexpected end of file")

	// ErrInvalidValue means a byte did not match any grammar alternative at
	// its position.
	ErrInvalidValue = errors.New("invalid value")

	// ErrTrailingData means bytes remained after a complete top-level value.
	ErrTrailingData = errors.New("unexpected data at the end")
)

// SyntaxError is the concrete type of syntax errors reported by Repair.
// It wraps one of the sentinel errors and records the byte offset at which
// parsing stopped.
type SyntaxError struct {
	Offset int // byte offset at which parsing stopped, 0-based

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.err.Error(), e.Offset)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

func syntaxError(pos int, err error) error {
	return &SyntaxError{Offset: pos, err: err}
}

// Repair reads one JSON text from r, validates it, and writes it to w.
//
// If the input is well-formed, the bytes written are identical to the bytes
// read and the result is Valid. If the input is well-formed except for comma
// placement between array elements or object members (a missing comma, or a
// spurious comma before a closing bracket), Repair corrects the commas,
// preserves every other byte including whitespace, and reports Repaired.
//
// Any other defect aborts the call: syntax errors are reported as a
// *SyntaxError wrapping one of the sentinel errors, and read or write
// failures are returned as-is. No complete output is guaranteed past the
// point of failure.
func Repair(r io.Reader, w io.Writer) (Result, error) {
	p := &parser{in: newCursor(r), out: w}
	if err := p.walkJSON(); err != nil {
		return 0, err
	}
	if p.repaired {
		return Repaired, nil
	}
	return Valid, nil
}
