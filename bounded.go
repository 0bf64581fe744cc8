package nanoflat

// Bounded is a fixed-capacity sequence for environments that cannot grow a
// slice at decode time. Unlike the Rust original this engine was
// distilled from, decoding into a Bounded that does not fit is an error,
// never a silent truncation (spec.md §9).
type Bounded[T any] struct {
	Items []T
	Cap   int
}

// NewBounded constructs an empty Bounded with the given capacity.
func NewBounded[T any](cap int) Bounded[T] {
	return Bounded[T]{Items: make([]T, 0, cap), Cap: cap}
}

// Push appends v, reporting ErrCollectionOverflow instead of growing past Cap.
func (b *Bounded[T]) Push(v T) error {
	if len(b.Items) >= b.Cap {
		return ErrCollectionOverflow
	}
	b.Items = append(b.Items, v)
	return nil
}

// EncodeBoundedField runs the value phase for a bounded field. A Bounded
// field is laid out on the wire identically to an unbounded Vector; the
// capacity only constrains the in-memory representation.
func EncodeBoundedField[T any](enc *Encoder, tableStart uint32, b Bounded[T]) (EncodeWV, error) {
	return EncodeVectorField(enc, tableStart, Vector[T]{Items: b.Items})
}

// EncodePostBoundedField mirrors EncodePostVectorField for a bounded field.
func EncodePostBoundedField[T any](enc *Encoder, b Bounded[T], wv EncodeWV, encodeElem func(*Encoder, uint32, T) (EncodeWV, error), postElem func(*Encoder, T, EncodeWV) error) error {
	return EncodePostVectorField(enc, Vector[T]{Items: b.Items}, wv, encodeElem, postElem)
}

// DecodeBoundedField materializes a bounded field, returning
// ErrCollectionOverflow if the encoded vector holds more elements than cap
// allows rather than truncating it.
func DecodeBoundedField[T any](dec *Decoder, wv DecodeWV, cap int, elemSize uint32, decodeElem func(*Decoder, uint32) (T, error)) (Bounded[T], error) {
	if !wv.Present() {
		return NewBounded[T](cap), nil
	}
	listStart, err := dec.ResolveOffset(wv.FieldOffset())
	if err != nil {
		return Bounded[T]{}, err
	}
	count, err := dec.ReadU32(listStart)
	if err != nil {
		return Bounded[T]{}, err
	}
	if int(count) > cap {
		return Bounded[T]{}, ErrCollectionOverflow
	}
	base := listStart + 4
	items := make([]T, count, cap)
	for i := range items {
		items[i], err = decodeElem(dec, base+uint32(i)*elemSize)
		if err != nil {
			return Bounded[T]{}, err
		}
	}
	return Bounded[T]{Items: items, Cap: cap}, nil
}
