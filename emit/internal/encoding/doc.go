// Package encoding provides wasm binary emission for runtime layout
// computations.
//
// This package contains the minimal subset of the WebAssembly binary format
// needed by the emit package: LEB128 writers, the i32 arithmetic opcodes used
// by size/alignment/offset computations, and a module builder that assembles
// the type, function, export, and code sections of a synthetic module.
//
// This package is internal to emit.
package encoding
