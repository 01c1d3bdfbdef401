// Package errors provides structured error types for the irgen library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the field path and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEmit, errors.KindOverflow).
//		Path("point", "y").
//		Detail("offset exceeds 32-bit address space").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Overflow(errors.PhaseLayout, path, size, add)
//	err := errors.InvalidInput(errors.PhaseParse, "empty field spec")
//
// All errors implement the standard error interface and support errors.Is/As.
//
// Contract violations (a heap header added after fields, projecting an
// element through a layout it does not belong to, filling a storage type
// twice) are programming errors in the calling code generator, not
// recoverable conditions. Those panic instead of returning an Error.
package errors
