// Package errors provides structured error types for the wasm-ir module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending node identity, a field path for
// loader errors, a line number for text checks, and a cause chain.
//
// Two failure classes exist. Structural errors (an unknown node kind, a
// dangling handle, sizing the none type) mean the tree is malformed; they
// panic through Invariant. Unsupported input (a memory access with an
// offset, an operator the printer has no case for) is returned as an
// *Error with KindUnsupported or KindTypeMismatch so callers can choose to
// skip, warn or abort.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePrint, errors.KindUnsupported).
//		Node("load#3").
//		Detail("offset %d", 16).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(errors.PhasePrint, "store#1", "non-zero offset")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
