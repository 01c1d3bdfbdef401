package emit

import (
	"fmt"

	"github.com/reedlang/irgen/emit/internal/encoding"
)

// Value names an i32 intermediate result within one Func. The zero Value is
// invalid.
type Value struct {
	fn    *Func
	local int
	ok    bool
}

// Valid reports whether the value was produced by a Func operation.
func (v Value) Valid() bool {
	return v.ok
}

// Address is a pointer value together with the storage type it points at.
type Address struct {
	Ptr  Value
	Type Type
}

// Func is a wasm function under construction. Every operation captures its
// result in a fresh local and returns a Value naming it.
type Func struct {
	name       string
	body       []encoding.Instruction
	numParams  int
	numResults int
	numLocals  int
	returned   bool
}

// Name returns the function's export name.
func (f *Func) Name() string {
	return f.name
}

func (f *Func) checkOperand(v Value) {
	if !v.ok || v.fn != f {
		panic(fmt.Sprintf("emit: value does not belong to function %q", f.name))
	}
}

// capture stores the value on top of the stack into a fresh local.
func (f *Func) capture() Value {
	local := f.numParams + f.numLocals
	f.numLocals++
	f.body = append(f.body, encoding.Instruction{Op: encoding.OpLocalSet, Imm: int32(local)})
	return Value{fn: f, local: local, ok: true}
}

func (f *Func) get(v Value) {
	f.body = append(f.body, encoding.Instruction{Op: encoding.OpLocalGet, Imm: int32(v.local)})
}

// Param returns the value of the i-th i32 parameter.
func (f *Func) Param(i int) Value {
	if i < 0 || i >= f.numParams {
		panic(fmt.Sprintf("emit: function %q has no parameter %d", f.name, i))
	}
	return Value{fn: f, local: i, ok: true}
}

// I32Const materializes a constant.
func (f *Func) I32Const(v uint32) Value {
	f.body = append(f.body, encoding.Instruction{Op: encoding.OpI32Const, Imm: int32(v)})
	return f.capture()
}

func (f *Func) binop(op byte, a, b Value) Value {
	f.checkOperand(a)
	f.checkOperand(b)
	f.get(a)
	f.get(b)
	f.body = append(f.body, encoding.Instruction{Op: op})
	return f.capture()
}

// Add computes a + b.
func (f *Func) Add(a, b Value) Value {
	return f.binop(encoding.OpI32Add, a, b)
}

// Sub computes a - b.
func (f *Func) Sub(a, b Value) Value {
	return f.binop(encoding.OpI32Sub, a, b)
}

// And computes a & b.
func (f *Func) And(a, b Value) Value {
	return f.binop(encoding.OpI32And, a, b)
}

// AddConst computes v + c, returning v unchanged when c is zero.
func (f *Func) AddConst(v Value, c uint32) Value {
	if c == 0 {
		f.checkOperand(v)
		return v
	}
	return f.Add(v, f.I32Const(c))
}

// MaxU computes the unsigned maximum of a and b.
func (f *Func) MaxU(a, b Value) Value {
	f.checkOperand(a)
	f.checkOperand(b)
	f.get(a)
	f.get(b)
	f.get(a)
	f.get(b)
	f.body = append(f.body, encoding.Instruction{Op: encoding.OpI32GtU})
	f.body = append(f.body, encoding.Instruction{Op: encoding.OpSelect})
	return f.capture()
}

// AlignUpConst rounds v up to a constant power-of-two alignment:
// (v + align - 1) & -align.
func (f *Func) AlignUpConst(v Value, align uint32) Value {
	f.checkOperand(v)
	if align <= 1 {
		return v
	}
	sum := f.AddConst(v, align-1)
	return f.And(sum, f.I32Const(-align))
}

// AlignUp rounds v up to a runtime power-of-two alignment:
// (v + align - 1) & (0 - align).
func (f *Func) AlignUp(v, align Value) Value {
	f.checkOperand(v)
	f.checkOperand(align)
	sum := f.Sub(f.Add(v, align), f.I32Const(1))
	mask := f.Sub(f.I32Const(0), align)
	return f.And(sum, mask)
}

// Return emits a return of v and finishes the function.
func (f *Func) Return(v Value) {
	f.checkOperand(v)
	f.get(v)
	f.body = append(f.body, encoding.Instruction{Op: encoding.OpReturn})
	f.returned = true
}

func buildModule(funcs []*Func) []byte {
	mb := encoding.NewModuleBuilder()
	for _, fn := range funcs {
		mb.AddFunc(fn.name, fn.numParams, fn.numResults, fn.numLocals, fn.body)
	}
	return mb.Build()
}
