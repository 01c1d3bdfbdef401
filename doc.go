// Package irgen provides IR-generation support for compiling aggregate types
// to wasm32 linear memory.
//
// The library computes the physical memory layout of aggregate (struct,
// class, closure) types for a code-generation backend: byte offsets, overall
// size, and alignment. Layouts that are fully known at compile time are
// described by constants; layouts that depend on members whose representation
// is only known at program execution defer size, alignment, and offset
// computation to generated wasm code.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	irgen/           Root package with the Target description
//	├── layout/      Aggregate layout computation: Builder and Layout
//	├── typeinfo/    Member descriptors: static vs. dynamic layout facts
//	├── emit/        Code-generation context: storage types and emitted
//	│                i32 arithmetic for runtime layout computations
//	└── errors/      Structured error types for emission failures
//
// # Quick Start
//
// Lay out a heap object with two fields:
//
//	ctx := emit.NewContext(irgen.DefaultTarget)
//	infos := []typeinfo.Info{
//	    typeinfo.StaticOf(4, 4),
//	    typeinfo.StaticOf(8, 8),
//	}
//	l := layout.New(ctx, layout.HeapObject, layout.Optimal, infos, nil)
//	fmt.Println(l.Size(), l.Alignment())
//
// When a member's layout is dynamic, Layout.EmitSize emits the computation
// into a function under construction instead of returning a constant:
//
//	fn := ctx.NewFunc("object_size", 0, 1)
//	fn.Return(l.EmitSize(fn))
//	mod, err := ctx.BuildModule()
//
// The resulting module bytes are a complete wasm32 module runnable by any
// engine.
//
// # Thread Safety
//
// A Builder is single-use and owned by one goroutine. Independent aggregates
// may be laid out concurrently, each with its own Builder and emit.Context.
// Target values are immutable and freely shared.
package irgen
