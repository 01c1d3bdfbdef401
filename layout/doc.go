// Package layout computes the physical memory layout of aggregate types.
//
// Given an ordered list of member descriptors, it determines byte offsets,
// overall size, and alignment, producing a description usable for
// compile-time-constant access and, when some members have layout only known
// at program execution, deferring offset computation to generated code.
//
// # Packing Strategies
//
// Two disciplines are supported, with incompatible goals:
//
//   - Optimal: statically sized fields are reordered in decreasing alignment
//     order to minimize padding. Use when this compilation unit has sole
//     authority over the layout.
//   - Universal: declared order is preserved, so independently compiled units
//     referencing the aggregate agree on offsets without re-deriving any
//     reordering.
//
// Reordering stops at the first member whose layout is not statically known:
// from that point, true offsets are not compile-time values and the only
// remaining discipline is sequential accumulation in declared order.
//
// # Builder and Layout
//
// Builder is the mutable accumulator: add an optional heap header, then fold
// field groups. Layout is the immutable result, constructed either one-shot
// (New) or from a driven Builder (FromBuilder):
//
//	b := layout.NewBuilder(target)
//	b.AddHeapHeader()
//	elems := layout.NewElements(infos)
//	b.AddFields(elems, layout.Universal)
//	l := layout.FromBuilder(b, storageType, elems)
//
// # Heap Objects
//
// Aggregates destined for heap allocation are prefixed with a fixed-format
// header (type-metadata pointer plus reference count) whose geometry comes
// from the Target. The header must be the first contribution to a Builder.
//
// # Failure Semantics
//
// There are no recoverable error conditions here. Preconditions (header
// added first, elements projected only through their own layout) are caller
// contracts; violations panic, since they indicate a bug in the calling code
// generator. The static/dynamic split is not an error: it is an expected
// outcome that changes how sizes and offsets are produced, never whether
// layout construction succeeds.
package layout
