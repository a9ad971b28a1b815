// Copyright (C) 2024 nsfisis. All Rights Reserved.

// Package reparojson implements a streaming JSON validator that repairs
// comma placement.
//
// # Repairing
//
// The Repair function reads one JSON text from an io.Reader, validates it in
// a single forward pass, and echoes it to an io.Writer:
//
//	res, err := reparojson.Repair(input, output)
//
// If the input is well-formed JSON, the output is byte-identical to the input
// and the result is Valid. If the only defects are comma placement between
// sibling array elements or object members (a comma missing where only
// whitespace separates two siblings, or a spurious comma before a closing
// bracket), Repair inserts or drops commas as needed, leaves every other byte
// untouched (including whitespace layout, number formatting, and string
// escapes), and reports Repaired. Any other defect is an error; Repair never
// rewrites value content.
//
// Repairing is idempotent: running Repair over its own successful output
// always yields Valid with identical output.
//
// # Errors
//
// Syntax errors have concrete type [*SyntaxError] and wrap one of
// [ErrUnexpectedEOF], [ErrInvalidValue], or [ErrTrailingData]:
//
//	if _, err := reparojson.Repair(in, out); err != nil {
//	   var serr *reparojson.SyntaxError
//	   if errors.As(err, &serr) {
//	      log.Fatalf("Bad input: %v", serr)
//	   }
//	   log.Fatalf("I/O failed: %v", err)
//	}
//
// Read and write failures are returned unchanged and are never reported as
// syntax errors. All errors abort the call; output written before the point
// of failure is not guaranteed to be a complete document.
//
// # Limitations
//
// Nested values are parsed by nested calls, so the recursion depth equals the
// structural nesting depth of the input. Pathologically deep nesting is
// bounded only by the goroutine stack.
package reparojson
