package nanoflat

// Optional wraps a field that may be entirely absent, as opposed to a
// vector or string whose absence is indistinguishable from empty
// (spec.md §4.2, "Absence and optionality").
type Optional[T any] struct {
	Valid bool
	Value T
}

// Some constructs a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Valid: true, Value: v} }

// EncodeOptionalField runs the value phase for an Optional field. encodeValue
// is the value-phase function for the wrapped type: EncodeScalarField[T] for
// a fixed-width integer, or EncodeIndirectField (ignoring its value
// argument) for a nested table.
func EncodeOptionalField[T any](enc *Encoder, tableStart uint32, opt Optional[T], encodeValue func(*Encoder, uint32, T) (EncodeWV, error)) (EncodeWV, error) {
	if !opt.Valid {
		return EncodeWV{}, nil
	}
	return encodeValue(enc, tableStart, opt.Value)
}

// EncodePostOptionalField runs the post phase for an Optional field.
// postValue is NoPost[T] for fixed-width integers, or a closure invoking
// EncodePostIndirect for a nested table or other out-of-line value.
func EncodePostOptionalField[T any](enc *Encoder, opt Optional[T], wv EncodeWV, postValue func(*Encoder, T, EncodeWV) error) error {
	if !opt.Valid {
		return nil
	}
	return postValue(enc, opt.Value, wv)
}

// DecodeOptionalField materializes an Optional field. decodeValue is
// DecodeScalarField[T] for a fixed-width integer, or a closure resolving
// the field's offset and decoding the table/union/vector at the far end.
func DecodeOptionalField[T any](dec *Decoder, wv DecodeWV, decodeValue func(*Decoder, DecodeWV) (T, error)) (Optional[T], error) {
	if !wv.Present() {
		return Optional[T]{}, nil
	}
	v, err := decodeValue(dec, wv)
	if err != nil {
		return Optional[T]{}, err
	}
	return Optional[T]{Valid: true, Value: v}, nil
}
