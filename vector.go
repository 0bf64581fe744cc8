package nanoflat

// Vector is an unbounded sequence field. An empty Vector encodes as an
// absent field, identically to a nil one: the format has no way to tell
// "empty" from "never set" for this field kind (spec.md §4.2).
type Vector[T any] struct {
	Items []T
}

// VectorOf is a convenience constructor.
func VectorOf[T any](items ...T) Vector[T] { return Vector[T]{Items: items} }

// EncodeVectorField runs the value phase for a vector field: an empty
// vector produces no storage at all, a non-empty one reserves the usual
// out-of-line placeholder.
func EncodeVectorField[T any](enc *Encoder, tableStart uint32, v Vector[T]) (EncodeWV, error) {
	if len(v.Items) == 0 {
		return EncodeWV{}, nil
	}
	return EncodeIndirectField(enc, tableStart)
}

// EncodePostVectorField writes the vector's body (a u32 length prefix
// followed by each element) and patches the field's placeholder.
// encodeElem and postElem are the value/post phase functions for the
// element type, invoked with the vector's start position standing in for
// a table_start: elements have no vtable of their own, so tableStart only
// matters to indirect elements computing their own relative offsets.
func EncodePostVectorField[T any](enc *Encoder, v Vector[T], wv EncodeWV, encodeElem func(*Encoder, uint32, T) (EncodeWV, error), postElem func(*Encoder, T, EncodeWV) error) error {
	if len(v.Items) == 0 {
		return nil
	}
	return EncodePostIndirect(enc, wv, func(enc *Encoder) (uint32, error) {
		listStart, err := enc.AppendU32(uint32(len(v.Items)))
		if err != nil {
			return 0, err
		}
		elemWVs := make([]EncodeWV, len(v.Items))
		for i, item := range v.Items {
			elemWVs[i], err = encodeElem(enc, listStart, item)
			if err != nil {
				return 0, err
			}
		}
		for i, item := range v.Items {
			if err := postElem(enc, item, elemWVs[i]); err != nil {
				return 0, err
			}
		}
		return listStart, nil
	})
}

// DecodeVectorField materializes a vector field. elemSize is the stride
// between elements (the integer's width, or 4 for an out-of-line element
// addressed by relative offset); decodeElem reads one element at an
// absolute position. An absent field decodes to a nil Vector, matching
// an encoded empty one.
func DecodeVectorField[T any](dec *Decoder, wv DecodeWV, elemSize uint32, decodeElem func(*Decoder, uint32) (T, error)) (Vector[T], error) {
	if !wv.Present() {
		return Vector[T]{}, nil
	}
	listStart, err := dec.ResolveOffset(wv.FieldOffset())
	if err != nil {
		return Vector[T]{}, err
	}
	count, err := dec.ReadU32(listStart)
	if err != nil {
		return Vector[T]{}, err
	}
	base := listStart + 4
	items := make([]T, count)
	for i := range items {
		items[i], err = decodeElem(dec, base+uint32(i)*elemSize)
		if err != nil {
			return Vector[T]{}, err
		}
	}
	return Vector[T]{Items: items}, nil
}

// DecodeIndirectElem resolves an out-of-line vector element (a table or
// union payload stored by relative offset from its own slot) and decodes
// it with decodeAt.
func DecodeIndirectElem[T any](dec *Decoder, slot uint32, decodeAt func(*Decoder, uint32) (T, error)) (T, error) {
	var zero T
	target, err := dec.ResolveOffset(slot)
	if err != nil {
		return zero, err
	}
	return decodeAt(dec, target)
}
