// Package typeinfo describes the layout facts of aggregate members.
//
// A member descriptor is one of two variants:
//
//   - Static: size and alignment are compile-time constants (bytes, with
//     power-of-two alignment).
//   - Dynamic: size and alignment are only known when generated code runs,
//     for example because the member's concrete representation is abstracted
//     across a module boundary. A Dynamic descriptor carries a callback that
//     emits the runtime size and alignment computation into a function under
//     construction.
//
// The layout package dispatches on the variant tag; there is no virtual
// dispatch hierarchy.
//
// FromWIT derives Static descriptors from WIT types using Canonical ABI
// layout rules, which is how a component-model frontend feeds member facts
// into layout computation.
package typeinfo
