package layout

import (
	"sort"

	"go.uber.org/zap"

	"github.com/reedlang/irgen"
	"github.com/reedlang/irgen/emit"
	"github.com/reedlang/irgen/errors"
	"github.com/reedlang/irgen/layout/internal/abi"
	"github.com/reedlang/irgen/typeinfo"
)

// Builder incrementally folds field groups into a running aggregate layout.
// It is single-use: drive it with AddHeapHeader/AddFields, then capture its
// state into a Layout (or discard it). A Builder must not be shared across
// goroutines.
type Builder struct {
	target  irgen.Target
	slots   []emit.Type
	size    uint32
	align   uint32
	known   bool
	started bool
}

// NewBuilder creates a fresh builder for the given target.
func NewBuilder(target irgen.Target) *Builder {
	target.Validate()
	return &Builder{
		target: target,
		align:  1,
		known:  true,
	}
}

// AddHeapHeader prepends the standard heap header: a type-metadata pointer
// followed by a reference-count word. It must be the very first contribution
// to the layout; adding it after any other contribution is a programming
// error.
func (b *Builder) AddHeapHeader() {
	if b.started {
		panic("layout: heap header must be the first contribution to a builder")
	}
	b.started = true
	b.size = b.target.HeapHeaderSize()
	b.align = b.target.HeapHeaderAlign()
	b.slots = append(b.slots, emit.HeapHeaderTypeFor(b.target))
}

// AddFields folds a batch of elements into the layout using the given
// strategy, filling in each element's offset and storage index. It returns
// whether the batch may have increased the storage requirements of the
// layout: true if any field occupies non-zero space or forces alignment
// padding.
//
// Under Optimal, statically sized fields ahead of the first dynamically sized
// one are scheduled in decreasing alignment order (ties keep declared order).
// From the first dynamically sized field onward, and for every later batch,
// declared order is preserved and offsets are left unresolved, because they
// depend on extents only known at run time.
func (b *Builder) AddFields(elems []Element, strategy Strategy) bool {
	b.started = true
	grew := false

	next := 0
	if b.known {
		// Statically placeable prefix: everything ahead of the first
		// dynamically sized field.
		next = len(elems)
		for i := range elems {
			if _, ok := elems[i].info.(typeinfo.Dynamic); ok {
				next = i
				break
			}
		}

		order := make([]int, next)
		for i := range order {
			order[i] = i
		}
		if strategy == Optimal {
			sort.SliceStable(order, func(x, y int) bool {
				ax := elems[order[x]].info.(typeinfo.Static).Align
				ay := elems[order[y]].info.(typeinfo.Static).Align
				return ax > ay
			})
		}
		for _, i := range order {
			if b.placeStatic(&elems[i]) {
				grew = true
			}
		}
	}

	for ; next < len(elems); next++ {
		if b.addUnresolved(&elems[next]) {
			grew = true
		}
	}

	return grew
}

// placeStatic assigns a resolved offset to a statically sized field.
func (b *Builder) placeStatic(e *Element) bool {
	info := e.info.(typeinfo.Static)

	if info.Size == 0 {
		// Zero-size fields get an offset but no storage, and leave size and
		// alignment untouched.
		e.offset = b.size
		e.resolved = true
		return false
	}

	offset := abi.AlignTo(b.size, info.Align)
	size, ok := abi.SafeAddU32(offset, info.Size)
	if !ok {
		panic(errors.Overflow(errors.PhaseLayout, nil, offset, info.Size))
	}

	e.offset = offset
	e.resolved = true
	e.index = len(b.slots)
	e.hasSlot = true

	b.slots = append(b.slots, info.SlotType())
	b.size = size
	if info.Align > b.align {
		b.align = info.Align
	}

	Logger().Debug("placed field",
		zap.Uint32("offset", offset),
		zap.Uint32("size", info.Size),
		zap.Uint32("align", info.Align))

	return true
}

// addUnresolved folds a field whose offset must be computed by generated
// code. The layout is no longer fully known from this point on.
func (b *Builder) addUnresolved(e *Element) bool {
	b.known = false

	switch info := e.info.(type) {
	case typeinfo.Static:
		if info.Size == 0 {
			return false
		}
		// Size and alignment are constants even though the offset is not;
		// the alignment still folds into the aggregate's.
		if info.Align > b.align {
			b.align = info.Align
		}
	case typeinfo.Dynamic:
		// Runtime alignment folds in at emission time.
	}

	e.index = len(b.slots)
	e.hasSlot = true
	b.slots = append(b.slots, slotTypeOf(e.info))

	return true
}

func slotTypeOf(info typeinfo.Info) emit.Type {
	switch i := info.(type) {
	case typeinfo.Static:
		return i.SlotType()
	case typeinfo.Dynamic:
		return i.SlotType()
	default:
		return emit.ByteArrayType{Len: 0}
	}
}

// Empty reports whether the layout is known to occupy no storage.
func (b *Builder) Empty() bool {
	return b.known && b.size == 0
}

// Slots returns the ordered storage slot types accumulated so far.
func (b *Builder) Slots() []emit.Type {
	return b.slots
}

// Size returns the raw running size in bytes. It is not rounded up to the
// final alignment; Layout construction performs that rounding.
func (b *Builder) Size() uint32 {
	return b.size
}

// Alignment returns the alignment accumulated so far.
func (b *Builder) Alignment() uint32 {
	return b.align
}

// KnownLayout reports whether every folded field had a statically known
// layout. Once false it never becomes true again.
func (b *Builder) KnownLayout() bool {
	return b.known
}
