// Package nanoflat implements a compact, FlatBuffers-wire-compatible
// binary serialization engine for constrained environments: fixed-layout
// tables addressed through vtables, out-of-line vectors and strings, and
// two-slot unions. Encoding writes into a caller-supplied buffer that the
// engine never grows or reallocates; decoding materializes owned Go values.
//
// Records are not described at runtime. The nanoflatgen tool (see
// cmd/nanoflatgen) reads a Go struct annotated with field tags and emits
// a pair of EncodeXTable/DecodeXTable functions built entirely out of the
// primitives in this package, the same way a derive macro would in a
// language that has them.
package nanoflat
