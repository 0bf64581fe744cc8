// Package gen implements the Derivation component (spec.md §4.4): it reads
// a Go source file declaring table and union schemas and emits a second
// Go source file of EncodeXTable/DecodeXTable functions built entirely out
// of the nanoflat package's primitives. Go has no derive macros, so where
// the original generates one monomorphic procedure per record at compile
// time, this package generates the equivalent ordinary Go source ahead of
// a normal build — the same job, moved from macro-expansion time to a
// go:generate step.
package gen

// FieldKind classifies the wire shape a declared struct field takes.
type FieldKind int

const (
	KindScalar FieldKind = iota
	KindOptionalScalar
	KindTable
	KindOptionalTable
	KindVector
	KindBoundedVector
	KindString
	KindBoundedString
	KindUnion
)

// Field describes one slot of a table schema. A KindUnion field spans two
// consecutive vtable slots (Slot and Slot+1): the discriminant and the
// payload offset.
type Field struct {
	Name   string // Go field name
	Kind   FieldKind
	Elem   string // scalar/table/union type name this field's kind refers to
	Slot   int    // vtable slot index, in declaration order unless overridden by a struct tag
	Cap    int    // declared capacity for Bounded kinds
	IsInt8 bool   // true when Elem is a signed 8/16/32/64-bit integer rather than unsigned
}

// Record describes one table schema: a Go struct whose fields become
// vtable slots in declaration order.
type Record struct {
	Name   string
	Fields []Field
}

// UnionVariant describes one non-zero tag of a union schema. The implicit
// tag 0 never appears in Variants: the emitter synthesizes its case.
type UnionVariant struct {
	Name string // Go field name standing in for the variant
	Tag  uint8
	Type string // payload record name
}

// Union describes a discriminated union schema: a Go struct whose first
// field is a uint8 Tag and whose remaining fields each name one non-zero
// variant's payload type.
type Union struct {
	Name     string
	Variants []UnionVariant
}

// Schema is everything parse.go extracted from one source file.
type Schema struct {
	Package string
	Records []Record
	Unions  []Union
}
