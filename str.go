package nanoflat

// String is a UTF-8 string field: on the wire a vector of u8 followed by a
// trailing NUL that is not counted in the length (spec.md §4.2). An empty
// String is indistinguishable from an absent one, just like Vector.
type String string

// EncodeStringField runs the value phase for a string field.
func EncodeStringField(enc *Encoder, tableStart uint32, s String) (EncodeWV, error) {
	if len(s) == 0 {
		return EncodeWV{}, nil
	}
	return EncodeIndirectField(enc, tableStart)
}

// EncodePostStringField writes the string's bytes (length prefix, payload,
// trailing NUL) and patches the field's placeholder.
func EncodePostStringField(enc *Encoder, s String, wv EncodeWV) error {
	if len(s) == 0 {
		return nil
	}
	return EncodePostIndirect(enc, wv, func(enc *Encoder) (uint32, error) {
		strStart, err := enc.AppendU32(uint32(len(s)))
		if err != nil {
			return 0, err
		}
		for i := 0; i < len(s); i++ {
			if _, err := enc.AppendU8(s[i]); err != nil {
				return 0, err
			}
		}
		if _, err := enc.AppendU8(0); err != nil {
			return 0, err
		}
		return strStart, nil
	})
}

// DecodeStringField materializes a string field. An absent field decodes
// to the empty string.
func DecodeStringField(dec *Decoder, wv DecodeWV) (String, error) {
	if !wv.Present() {
		return "", nil
	}
	strStart, err := dec.ResolveOffset(wv.FieldOffset())
	if err != nil {
		return "", err
	}
	length, err := dec.ReadU32(strStart)
	if err != nil {
		return "", err
	}
	raw, err := dec.bytesAt(strStart+4, int(length))
	if err != nil {
		return "", err
	}
	return String(raw), nil
}

// BoundedString is a fixed-capacity string, decoding with
// ErrCollectionOverflow rather than truncating an oversized payload
// (spec.md §9), the string counterpart of Bounded.
type BoundedString struct {
	Value String
	Cap   int
}

// EncodeBoundedStringField mirrors EncodeStringField; capacity is a
// decode-side concern only.
func EncodeBoundedStringField(enc *Encoder, tableStart uint32, s BoundedString) (EncodeWV, error) {
	return EncodeStringField(enc, tableStart, s.Value)
}

// EncodePostBoundedStringField mirrors EncodePostStringField.
func EncodePostBoundedStringField(enc *Encoder, s BoundedString, wv EncodeWV) error {
	return EncodePostStringField(enc, s.Value, wv)
}

// DecodeBoundedStringField materializes a bounded string field, rejecting
// a payload longer than cap instead of truncating it.
func DecodeBoundedStringField(dec *Decoder, wv DecodeWV, cap int) (BoundedString, error) {
	if !wv.Present() {
		return BoundedString{Cap: cap}, nil
	}
	strStart, err := dec.ResolveOffset(wv.FieldOffset())
	if err != nil {
		return BoundedString{}, err
	}
	length, err := dec.ReadU32(strStart)
	if err != nil {
		return BoundedString{}, err
	}
	if int(length) > cap {
		return BoundedString{}, ErrCollectionOverflow
	}
	raw, err := dec.bytesAt(strStart+4, int(length))
	if err != nil {
		return BoundedString{}, err
	}
	return BoundedString{Value: String(raw), Cap: cap}, nil
}
