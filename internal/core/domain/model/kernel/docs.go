// Package kernel provides core domain primitives shared across the order and
// inventory models.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//
// These primitives are immutable and thread-safe, and enforce their own
// invariants so that domain objects built on them are always in a valid state.
package kernel
