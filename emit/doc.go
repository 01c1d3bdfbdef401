// Package emit provides the code-generation context consumed by layout
// computation.
//
// The context serves two roles:
//
//   - Storage types: synthesize an anonymous aggregate storage type from an
//     ordered list of slot types, or declare an opaque named type and fill
//     its body later. Storage types are descriptive handles; they record the
//     slot list that downstream lowering stores fields into.
//
//   - Emitted computations: build wasm functions whose bodies compute sizes,
//     alignments, and offsets that are not compile-time constants. A Func
//     exposes i32 arithmetic (add, align-up, unsigned max) over opaque
//     Values; BuildModule assembles all functions into a runnable wasm32
//     module.
//
// # Value Model
//
// Every operation captures its result in a fresh local and returns a Value
// naming that local, so intermediate results can be reused without stack
// discipline concerns:
//
//	fn := ctx.NewFunc("size", 2, 1)
//	sz := fn.AlignUp(fn.Param(0), fn.Param(1))
//	fn.Return(sz)
//
// Values are only meaningful within the Func that created them.
//
// # Thread Safety
//
// A Context and its Funcs are owned by a single goroutine. Independent
// compilation activity should use independent Contexts.
package emit
