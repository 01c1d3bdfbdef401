// Package abi provides byte-arithmetic helpers for aggregate layout
// computation.
//
// This package is internal to layout.
package abi

import "math"

// AlignTo rounds offset up to the next multiple of align. align must be a
// power of two; zero is treated as no alignment.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// SafeAddU32 adds two sizes, reporting whether the sum stays within the
// 32-bit address space.
func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}
