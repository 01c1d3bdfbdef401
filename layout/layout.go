package layout

import (
	"github.com/reedlang/irgen/emit"
	"github.com/reedlang/irgen/layout/internal/abi"
	"github.com/reedlang/irgen/typeinfo"
)

// Layout is the immutable result of laying out a complete aggregate.
//
// Its shape, the slot list and which offsets are static versus computed by
// generated code, is final once constructed, even when some member extents
// are only known at run time. In the latter case Size returns a placeholder
// that must not be treated as the object's true extent; EmitSize emits the
// real computation.
type Layout struct {
	storage  *emit.StructType
	elements []Element
	size     uint32
	align    uint32
	prefix   uint32
	known    bool
}

// New lays out an aggregate in one shot: it drives a fresh Builder over the
// member descriptors, adding the heap header first when kind is HeapObject.
// If typeToFill is non-nil its body is filled with the accumulated slot list;
// otherwise an anonymous storage type is synthesized.
//
// The resulting element list is parallel to infos, including members that
// received no storage slot.
func New(ctx *emit.Context, kind Kind, strategy Strategy, infos []typeinfo.Info, typeToFill *emit.StructType) *Layout {
	b := NewBuilder(ctx.Target())
	if kind == HeapObject {
		b.AddHeapHeader()
	}

	elems := NewElements(infos)
	b.AddFields(elems, strategy)

	storage := typeToFill
	if storage != nil {
		storage.SetBody(b.Slots())
	} else {
		storage = ctx.AnonStruct(b.Slots())
	}

	return FromBuilder(b, storage, elems)
}

// FromBuilder captures a driven builder's final state into a Layout. elems
// must be the element list the builder filled in, in declared order across
// all AddFields calls. The captured size is rounded up to the captured
// alignment so that arrays of the aggregate tile correctly.
func FromBuilder(b *Builder, storage *emit.StructType, elems []Element) *Layout {
	return &Layout{
		storage:  storage,
		elements: elems,
		size:     abi.AlignTo(b.Size(), b.Alignment()),
		align:    b.Alignment(),
		prefix:   b.Size(),
		known:    b.KnownLayout(),
	}
}

// Elements returns the per-member layout records, parallel to the descriptors
// passed at construction.
func (l *Layout) Elements() []Element {
	return l.elements
}

// Type returns the aggregate's storage type handle.
func (l *Layout) Type() *emit.StructType {
	return l.storage
}

// Size returns the total size in bytes, a multiple of Alignment. When
// KnownLayout is false this is only the statically known prefix, rounded; the
// true size must be computed with EmitSize.
func (l *Layout) Size() uint32 {
	return l.size
}

// Alignment returns the aggregate's alignment: the maximum over the heap
// header (if any) and all statically sized members. Runtime alignments of
// dynamically sized members fold in at emission time.
func (l *Layout) Alignment() uint32 {
	return l.align
}

// Empty reports whether the laid-out aggregate is known to occupy no bytes.
// An aggregate with a runtime-computed extent is never empty, even when its
// static prefix is zero.
func (l *Layout) Empty() bool {
	return l.known && l.size == 0
}

// KnownLayout reports whether every member had statically known layout.
func (l *Layout) KnownLayout() bool {
	return l.known
}

// HasStaticLayout reports whether this is a concrete, final layout
// description. Always true: even when offsets are computed at run time, the
// shape of the computation is fixed at construction.
func (l *Layout) HasStaticLayout() bool {
	return true
}

// CastTo reinterprets a raw pointer value as the base address of this
// aggregate.
func (l *Layout) CastTo(ptr emit.Value) emit.Address {
	return emit.Address{Ptr: ptr, Type: l.storage}
}

// EmitSize returns the aggregate's size as a value in fn: the constant when
// the layout is fully known, otherwise the emitted computation: the static
// prefix, extended by each remaining member's (runtime) alignment and size in
// declared order, finally rounded up to the maximum alignment seen so the
// aggregate tiles in arrays.
func (l *Layout) EmitSize(fn *emit.Func) emit.Value {
	if l.known {
		return fn.I32Const(l.size)
	}

	size := fn.I32Const(l.prefix)
	alignV := fn.I32Const(l.align)

	for i := l.firstUnresolved(); i < len(l.elements); i++ {
		switch info := l.elements[i].info.(type) {
		case typeinfo.Static:
			if info.Size == 0 {
				continue
			}
			size = fn.AlignUpConst(size, info.Align)
			size = fn.AddConst(size, info.Size)
		case typeinfo.Dynamic:
			sz, al := info.EmitLayout(fn)
			size = fn.AlignUp(size, al)
			size = fn.Add(size, sz)
			alignV = fn.MaxU(alignV, al)
		}
	}

	return fn.AlignUp(size, alignV)
}

// EmitAlign returns the aggregate's alignment as a value in fn: the constant
// when the layout is fully known, otherwise the static alignment combined
// with each dynamically sized member's runtime alignment.
func (l *Layout) EmitAlign(fn *emit.Func) emit.Value {
	if l.known {
		return fn.I32Const(l.align)
	}

	alignV := fn.I32Const(l.align)
	for i := l.firstUnresolved(); i < len(l.elements); i++ {
		if info, ok := l.elements[i].info.(typeinfo.Dynamic); ok {
			_, al := info.EmitLayout(fn)
			alignV = fn.MaxU(alignV, al)
		}
	}

	return alignV
}

// Project returns the address of e given the aggregate's base address. For
// resolved elements this is constant pointer arithmetic; otherwise the offset
// is computed in fn by accumulating the extents of the members preceding e.
// Elements with no storage slot project to a zero-size address at their
// computed offset. e must belong to this layout.
func (l *Layout) Project(fn *emit.Func, e *Element, base emit.Address) emit.Address {
	l.mustOwn(e)

	if e.resolved {
		return emit.Address{Ptr: fn.AddConst(base.Ptr, e.offset), Type: e.slotType()}
	}

	offset := l.emitOffset(fn, e)
	return emit.Address{Ptr: fn.Add(base.Ptr, offset), Type: e.slotType()}
}

// emitOffset emits the runtime offset of target: the same accumulation as
// EmitSize, truncated to stop immediately before target and rounded up to
// target's own alignment.
func (l *Layout) emitOffset(fn *emit.Func, target *Element) emit.Value {
	size := fn.I32Const(l.prefix)

	for i := l.firstUnresolved(); i < len(l.elements); i++ {
		e := &l.elements[i]
		atTarget := e == target

		switch info := e.info.(type) {
		case typeinfo.Static:
			if info.Size == 0 {
				if atTarget {
					return size
				}
				continue
			}
			size = fn.AlignUpConst(size, info.Align)
			if atTarget {
				return size
			}
			size = fn.AddConst(size, info.Size)
		case typeinfo.Dynamic:
			sz, al := info.EmitLayout(fn)
			size = fn.AlignUp(size, al)
			if atTarget {
				return size
			}
			size = fn.Add(size, sz)
		}
	}

	panic("layout: unresolved element not reached in offset emission")
}

func (l *Layout) firstUnresolved() int {
	for i := range l.elements {
		if !l.elements[i].resolved {
			return i
		}
	}
	return len(l.elements)
}

func (l *Layout) mustOwn(e *Element) {
	for i := range l.elements {
		if &l.elements[i] == e {
			return
		}
	}
	panic("layout: element does not belong to this layout")
}
