package typeinfo

import (
	"fmt"

	"github.com/reedlang/irgen/emit"
)

// Info is a member descriptor: either Static or Dynamic. The set of variants
// is closed.
type Info interface {
	isInfo()
}

// Static describes a member whose size and alignment are compile-time
// constants.
type Static struct {
	// Slot, when non-nil, is the storage shape recorded in the aggregate's
	// storage type. Defaults to an opaque byte array of Size bytes.
	Slot  emit.Type
	Size  uint32
	Align uint32
}

func (Static) isInfo() {}

// StaticOf builds a Static descriptor, validating the alignment. A zero or
// non-power-of-two alignment is a bug in the type system feeding the
// descriptor, not a recoverable condition.
func StaticOf(size, align uint32) Static {
	if align == 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("typeinfo: alignment %d is not a power of two", align))
	}
	return Static{Size: size, Align: align}
}

// WithSlot returns a copy of the descriptor with an explicit storage shape.
func (s Static) WithSlot(slot emit.Type) Static {
	s.Slot = slot
	return s
}

// slotType returns the storage shape for this member.
func (s Static) slotType() emit.Type {
	if s.Slot != nil {
		return s.Slot
	}
	return emit.ByteArrayType{Len: s.Size}
}

// SlotType returns the storage shape recorded for this member in the
// aggregate's storage type.
func (s Static) SlotType() emit.Type {
	return s.slotType()
}

// Dynamic describes a member whose size and alignment must be computed by
// generated code.
type Dynamic struct {
	// EmitLayout emits the member's runtime size and alignment (both i32,
	// alignment a power of two) into fn.
	EmitLayout func(fn *emit.Func) (size, align emit.Value)
	// Slot, when non-nil, is a best-effort storage shape for the member.
	// Defaults to a zero-length byte array, since the true extent is not
	// representable in a fixed storage type.
	Slot emit.Type
}

func (Dynamic) isInfo() {}

// SlotType returns the storage shape recorded for this member.
func (d Dynamic) SlotType() emit.Type {
	if d.Slot != nil {
		return d.Slot
	}
	return emit.ByteArrayType{Len: 0}
}
