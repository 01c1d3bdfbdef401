package layout

import (
	"fmt"

	"github.com/reedlang/irgen/emit"
	"github.com/reedlang/irgen/typeinfo"
)

// Element is the layout record of a single aggregate member. Elements are
// created unplaced, filled in by Builder.AddFields, and immutable afterward.
type Element struct {
	info     typeinfo.Info
	offset   uint32
	index    int
	resolved bool
	hasSlot  bool
}

// NewElements creates one unplaced element per member descriptor, in declared
// order.
func NewElements(infos []typeinfo.Info) []Element {
	elems := make([]Element, len(infos))
	for i, info := range infos {
		elems[i] = Element{info: info}
	}
	return elems
}

// Info returns the member descriptor this element was created from.
func (e *Element) Info() typeinfo.Info {
	return e.info
}

// Offset returns the element's byte offset from the start of the aggregate.
// ok is false when the offset depends on a preceding member whose extent is
// only known at run time; use Layout.Project to compute it in generated code.
func (e *Element) Offset() (offset uint32, ok bool) {
	return e.offset, e.resolved
}

// StorageIndex returns the element's position in the aggregate's storage slot
// list. ok is false for members that occupy no storage.
func (e *Element) StorageIndex() (index int, ok bool) {
	return e.index, e.hasSlot
}

// Project returns the element's address given the aggregate's base address.
// It is valid only for elements with a resolved offset; projecting an
// unresolved element requires the owning Layout's runtime offset computation
// (Layout.Project), and calling this instead is a bug in the caller.
func (e *Element) Project(fn *emit.Func, base emit.Address) emit.Address {
	if !e.resolved {
		panic("layout: projecting an unresolved element without its layout")
	}
	return emit.Address{Ptr: fn.AddConst(base.Ptr, e.offset), Type: e.slotType()}
}

// slotType returns the storage shape recorded for this element.
func (e *Element) slotType() emit.Type {
	switch info := e.info.(type) {
	case typeinfo.Static:
		if !e.hasSlot {
			return emit.ByteArrayType{Len: 0}
		}
		return info.SlotType()
	case typeinfo.Dynamic:
		return info.SlotType()
	default:
		return emit.ByteArrayType{Len: 0}
	}
}

func (e *Element) String() string {
	if !e.resolved {
		return "element at runtime-computed offset"
	}
	return fmt.Sprintf("element at offset %d", e.offset)
}
