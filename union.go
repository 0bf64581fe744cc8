package nanoflat

// Union implements the two-slot union protocol (spec.md §4.2): a u8
// discriminant and an i32 payload offset occupy two adjacent vtable
// entries. Variant 0 is reserved for the nullary "no value" case and
// carries no payload; every other discriminant names a variant whose
// payload slot must be present. The generator emits one switch per union
// type dispatching to these helpers — Go has no sum types to pattern
// match generically, so the per-variant branching is generated code, not
// library code.

// EncodeUnionDiscriminant runs the value phase for a union's discriminant
// slot.
func EncodeUnionDiscriminant(enc *Encoder, tableStart uint32, tag uint8) (EncodeWV, error) {
	return EncodeScalarField(enc, tableStart, tag)
}

// EncodeUnionPayload runs the value phase for a union's payload slot. A
// nullary variant (tag 0) reports no payload at all, matching the
// discriminant's own vtable entry in having no corresponding storage.
func EncodeUnionPayload(enc *Encoder, tableStart uint32, hasPayload bool) (EncodeWV, error) {
	if !hasPayload {
		return EncodeWV{}, nil
	}
	return EncodeIndirectField(enc, tableStart)
}

// DecodeUnionDiscriminant runs the value-decode phase for a union's
// discriminant slot. A union's discriminant is itself required: an
// absent slot means the field wasn't written at all, not that it holds
// variant 0.
func DecodeUnionDiscriminant(dec *Decoder, wv DecodeWV) (uint8, error) {
	return DecodeScalarField[uint8](dec, wv)
}

// RequirePayloadSlot validates that a non-nullary discriminant has a
// payload offset to follow, returning the absolute slot position holding
// that offset (for ResolveOffset) or MissingPayloadError if the variant's
// payload was never written.
func RequirePayloadSlot(tag uint8, wv DecodeWV) (uint32, error) {
	if !wv.Present() {
		return 0, MissingPayloadError(tag)
	}
	return wv.FieldOffset(), nil
}
