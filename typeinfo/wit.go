package typeinfo

import (
	"go.bytecodealliance.org/wit"
)

// FromWIT derives a Static descriptor from a WIT type using Canonical ABI
// layout rules. All WIT types have statically known layout.
func FromWIT(t wit.Type) Static {
	size, align := witSizeAlign(t)
	return Static{Size: size, Align: align}
}

func witSizeAlign(t wit.Type) (uint32, uint32) {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return 1, 1
	case wit.U16, wit.S16:
		return 2, 2
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return 4, 4
	case wit.U64, wit.S64, wit.F64:
		return 8, 8
	case wit.String:
		return 8, 4 // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return witTypeDefSizeAlign(typ)
	default:
		return 0, 1
	}
}

func witTypeDefSizeAlign(t *wit.TypeDef) (uint32, uint32) {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		return witRecordSizeAlign(kind)
	case *wit.Variant:
		return witVariantSizeAlign(kind)
	case *wit.Enum:
		size := discriminantSize(len(kind.Cases))
		return size, size
	case *wit.List:
		return 8, 4 // [ptr: u32, len: u32]
	case *wit.Option:
		innerSize, innerAlign := witSizeAlign(kind.Type)
		return witTaggedSizeAlign(1, innerSize, innerAlign)
	case *wit.Result:
		var okSize, okAlign, errSize, errAlign uint32 = 0, 1, 0, 1
		if kind.OK != nil {
			okSize, okAlign = witSizeAlign(kind.OK)
		}
		if kind.Err != nil {
			errSize, errAlign = witSizeAlign(kind.Err)
		}
		return witTaggedSizeAlign(1, max32(okSize, errSize), max32(okAlign, errAlign))
	case *wit.Tuple:
		return witTupleSizeAlign(kind)
	case *wit.Flags:
		return witFlagsSizeAlign(kind)
	case *wit.Own, *wit.Borrow, *wit.Resource:
		return 4, 4 // i32 handle
	case wit.Type:
		return witSizeAlign(kind)
	default:
		return 0, 1
	}
}

func witRecordSizeAlign(r *wit.Record) (uint32, uint32) {
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		size, align := witSizeAlign(field.Type)
		offset = alignTo(offset, align) + size
		maxAlign = max32(maxAlign, align)
	}

	return alignTo(offset, maxAlign), maxAlign
}

func witVariantSizeAlign(v *wit.Variant) (uint32, uint32) {
	if len(v.Cases) == 0 {
		return 0, 1
	}

	discSize := discriminantSize(len(v.Cases))
	maxAlign := discSize
	maxSize := uint32(0)

	for _, cs := range v.Cases {
		if cs.Type == nil {
			continue
		}
		size, align := witSizeAlign(cs.Type)
		maxAlign = max32(maxAlign, align)
		maxSize = max32(maxSize, size)
	}

	return witTaggedSizeAlign(discSize, maxSize, maxAlign)
}

// witTaggedSizeAlign lays out a discriminant followed by an aligned payload.
func witTaggedSizeAlign(discSize, payloadSize, payloadAlign uint32) (uint32, uint32) {
	align := max32(discSize, payloadAlign)
	payloadOffset := alignTo(discSize, payloadAlign)
	return alignTo(payloadOffset+payloadSize, align), align
}

func witTupleSizeAlign(t *wit.Tuple) (uint32, uint32) {
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, typ := range t.Types {
		size, align := witSizeAlign(typ)
		offset = alignTo(offset, align) + size
		maxAlign = max32(maxAlign, align)
	}

	return alignTo(offset, maxAlign), maxAlign
}

func witFlagsSizeAlign(f *wit.Flags) (uint32, uint32) {
	n := len(f.Flags)
	switch {
	case n == 0:
		return 0, 1
	case n <= 8:
		return 1, 1
	case n <= 16:
		return 2, 2
	case n <= 32:
		return 4, 4
	case n <= 64:
		return 8, 8
	default:
		// >64 flags: multiple u32s per Canonical ABI spec
		return uint32((n + 31) / 32 * 4), 4
	}
}

// discriminantSize: 1 byte for <=256 cases, 2 for <=65536, else 4 per spec.
func discriminantSize(numCases int) uint32 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
