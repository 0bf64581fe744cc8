package nanoflat

// EncodeRoot writes the 4-byte relative root offset at buffer position 0
// and returns the finished slice (spec.md §6). encodeRoot must encode the
// top-level table and return its absolute start position.
func EncodeRoot(buf []byte, encodeRoot func(*Encoder) (uint32, error)) ([]byte, error) {
	enc := NewEncoder(buf)
	rootSlot, err := enc.AppendI32(0)
	if err != nil {
		return nil, err
	}
	tableStart, err := encodeRoot(enc)
	if err != nil {
		return nil, err
	}
	if err := enc.PatchI32At(rootSlot, int32(tableStart)-int32(rootSlot)); err != nil {
		return nil, err
	}
	return enc.Finalize(), nil
}

// DecodeRoot resolves the root offset at the head of buf and invokes
// decodeRoot with the absolute position of the root table.
func DecodeRoot[T any](buf []byte, decodeRoot func(*Decoder, uint32) (T, error)) (T, error) {
	var zero T
	dec := NewDecoder(buf)
	tableStart, err := dec.ResolveOffset(0)
	if err != nil {
		return zero, err
	}
	return decodeRoot(dec, tableStart)
}
