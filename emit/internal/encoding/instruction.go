package encoding

import "bytes"

// Opcodes used by emitted layout computations.
const (
	OpEnd      byte = 0x0B
	OpReturn   byte = 0x0F
	OpSelect   byte = 0x1B
	OpLocalGet byte = 0x20
	OpLocalSet byte = 0x21
	OpI32Const byte = 0x41
	OpI32GtU   byte = 0x4B
	OpI32Add   byte = 0x6A
	OpI32Sub   byte = 0x6B
	OpI32And   byte = 0x71
)

// ValI32 is the binary encoding of the i32 value type.
const ValI32 byte = 0x7F

// Instruction is a single emitted instruction. Imm is the LEB128 immediate
// for opcodes that carry one (i32.const, local.get, local.set) and unused
// otherwise.
type Instruction struct {
	Op  byte
	Imm int32
}

// hasImm reports whether the opcode carries a LEB128 immediate.
func hasImm(op byte) bool {
	switch op {
	case OpI32Const, OpLocalGet, OpLocalSet:
		return true
	}
	return false
}

// EncodeInstructionsTo writes an instruction sequence to buf.
func EncodeInstructionsTo(buf *bytes.Buffer, instrs []Instruction) {
	for _, in := range instrs {
		buf.WriteByte(in.Op)
		if !hasImm(in.Op) {
			continue
		}
		if in.Op == OpI32Const {
			WriteSLEB128(buf, in.Imm)
		} else {
			WriteULEB128(buf, uint32(in.Imm))
		}
	}
}
