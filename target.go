package irgen

import "fmt"

// Target describes the pointer geometry of the compilation target. It is the
// single configuration value threaded through layout computation; there is no
// package-level mutable target state.
type Target struct {
	// PointerSize is the size in bytes of a pointer on the target.
	PointerSize uint32
	// PointerAlign is the required alignment in bytes of a pointer.
	PointerAlign uint32
}

// DefaultTarget is the wasm32 target: 4-byte pointers, 4-byte aligned.
var DefaultTarget = Target{PointerSize: 4, PointerAlign: 4}

// Validate panics if the target geometry is unusable. Layout computation is
// meaningless with a zero or non-power-of-two pointer size, and such a target
// indicates a configuration bug rather than a recoverable condition.
func (t Target) Validate() {
	if t.PointerSize == 0 || t.PointerSize&(t.PointerSize-1) != 0 {
		panic(fmt.Sprintf("irgen: pointer size %d is not a power of two", t.PointerSize))
	}
	if t.PointerAlign == 0 || t.PointerAlign&(t.PointerAlign-1) != 0 {
		panic(fmt.Sprintf("irgen: pointer alignment %d is not a power of two", t.PointerAlign))
	}
}

// HeapHeaderSize returns the size in bytes of the fixed-format header
// prefixed to heap-allocated objects: a type-metadata reference followed by a
// reference-count word.
func (t Target) HeapHeaderSize() uint32 {
	return 2 * t.PointerSize
}

// HeapHeaderAlign returns the alignment of the heap header.
func (t Target) HeapHeaderAlign() uint32 {
	return t.PointerAlign
}
