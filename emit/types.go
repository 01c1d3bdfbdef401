package emit

import (
	"fmt"
	"strings"
)

// Type describes the storage shape of a slot in an aggregate storage type.
// Types are descriptive handles for downstream lowering; they carry no layout
// arithmetic of their own.
type Type interface {
	fmt.Stringer
	isType()
}

// IntType is an integer slot of a fixed bit width.
type IntType struct {
	Bits uint32
}

func (t IntType) isType() {}

func (t IntType) String() string {
	return fmt.Sprintf("i%d", t.Bits)
}

// PointerType is a target-pointer slot.
type PointerType struct{}

func (PointerType) isType() {}

func (PointerType) String() string {
	return "ptr"
}

// ByteArrayType is an opaque slot of Len bytes. A zero-length byte array is
// the storage shape of fields that occupy no space.
type ByteArrayType struct {
	Len uint32
}

func (t ByteArrayType) isType() {}

func (t ByteArrayType) String() string {
	return fmt.Sprintf("[%d x i8]", t.Len)
}

// StructType is an aggregate storage type handle. It is created either filled
// (anonymous synthesis) or opaque (declared, body set later with SetBody).
type StructType struct {
	name   string
	slots  []Type
	filled bool
}

func (t *StructType) isType() {}

// Name returns the type's name. Anonymous types have generated names.
func (t *StructType) Name() string {
	return t.name
}

// Filled reports whether the body has been set.
func (t *StructType) Filled() bool {
	return t.filled
}

// Slots returns the ordered slot list. It is nil while the type is opaque.
func (t *StructType) Slots() []Type {
	return t.slots
}

// SetBody fills the body of an opaque struct type. Filling a type twice is a
// programming error.
func (t *StructType) SetBody(slots []Type) {
	if t.filled {
		panic(fmt.Sprintf("emit: storage type %q filled twice", t.name))
	}
	t.slots = append([]Type(nil), slots...)
	t.filled = true
}

func (t *StructType) String() string {
	if !t.filled {
		return fmt.Sprintf("%s = opaque", t.name)
	}
	parts := make([]string, len(t.slots))
	for i, s := range t.slots {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s = { %s }", t.name, strings.Join(parts, ", "))
}
