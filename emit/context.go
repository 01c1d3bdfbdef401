package emit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reedlang/irgen"
	"github.com/reedlang/irgen/errors"
)

// Context is the per-compilation code-generation context. It owns the storage
// types and functions synthesized while lowering one compilation unit.
type Context struct {
	target     irgen.Target
	headerType *StructType
	funcs      []*Func
	anonCount  int
}

// NewContext creates a context for the given target.
func NewContext(target irgen.Target) *Context {
	target.Validate()
	return &Context{target: target}
}

// Target returns the context's target description.
func (c *Context) Target() irgen.Target {
	return c.target
}

// AnonStruct synthesizes a filled anonymous storage type from an ordered slot
// list.
func (c *Context) AnonStruct(slots []Type) *StructType {
	c.anonCount++
	st := &StructType{name: fmt.Sprintf("anon.%d", c.anonCount)}
	st.SetBody(slots)
	Logger().Debug("synthesized storage type",
		zap.String("type", st.Name()),
		zap.Int("slots", len(slots)))
	return st
}

// DeclareStruct declares a named opaque storage type whose body is filled
// later with SetBody.
func (c *Context) DeclareStruct(name string) *StructType {
	return &StructType{name: name}
}

// HeapHeaderType returns the storage type of the heap object header: a
// type-metadata pointer followed by a reference-count word.
func (c *Context) HeapHeaderType() *StructType {
	if c.headerType == nil {
		c.headerType = HeapHeaderTypeFor(c.target)
	}
	return c.headerType
}

// HeapHeaderTypeFor builds the heap header storage type for a target.
func HeapHeaderTypeFor(target irgen.Target) *StructType {
	st := &StructType{name: "heapheader"}
	st.SetBody([]Type{
		PointerType{},
		IntType{Bits: 8 * target.PointerSize},
	})
	return st
}

// NewFunc creates a function under construction with numParams i32 parameters
// and numResults i32 results, registered for inclusion in BuildModule.
func (c *Context) NewFunc(name string, numParams, numResults int) *Func {
	fn := &Func{
		name:       name,
		numParams:  numParams,
		numResults: numResults,
	}
	c.funcs = append(c.funcs, fn)
	return fn
}

// BuildModule assembles all functions created on this context into a wasm32
// module exporting each by name.
func (c *Context) BuildModule() ([]byte, error) {
	if len(c.funcs) == 0 {
		return nil, errors.Empty(errors.PhaseBuild, "functions")
	}
	for _, fn := range c.funcs {
		if fn.numResults > 0 && !fn.returned {
			return nil, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
				Path(fn.name).
				Detail("function declares %d result(s) but never returns", fn.numResults).
				Build()
		}
	}
	return buildModule(c.funcs), nil
}
