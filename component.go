package nanoflat

// Integer is the set of fixed-width integer kinds the wire format can store
// inline in a table's field region. Every concrete type in this set has a
// built-in Encoder/Decoder append/read pair.
type Integer interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64
}

// EncodeWV is the working value threaded between the value, vtable-entry,
// and post phases of encoding a single field (spec.md §4.2). Present is
// false for a field whose encode produced no inline storage (an absent
// optional, or an empty vector/string).
type EncodeWV struct {
	present     bool
	tableStart  uint32
	valueOffset uint32
}

// Present reports whether the field produced inline storage.
func (wv EncodeWV) Present() bool { return wv.present }

// DecodeWV is the working value produced by a field's vtable-entry decode
// phase and consumed by its value decode phase. Present mirrors a nonzero
// vtable entry.
type DecodeWV struct {
	present    bool
	tableStart uint32
	entry      uint16
}

// Present reports whether the field this working value names was stored at
// all (a nonzero vtable entry).
func (wv DecodeWV) Present() bool { return wv.present }

// FieldOffset returns the absolute position the field's storage begins at.
// Only meaningful when Present is true.
func (wv DecodeWV) FieldOffset() uint32 { return wv.tableStart + uint32(wv.entry) }

func appendInteger[T Integer](enc *Encoder, v T) (uint32, error) {
	switch x := any(v).(type) {
	case uint8:
		return enc.AppendU8(x)
	case int8:
		return enc.AppendI8(x)
	case uint16:
		return enc.AppendU16(x)
	case int16:
		return enc.AppendI16(x)
	case uint32:
		return enc.AppendU32(x)
	case int32:
		return enc.AppendI32(x)
	case uint64:
		return enc.AppendU64(x)
	case int64:
		return enc.AppendI64(x)
	default:
		panic("nanoflat: unreachable integer kind")
	}
}

func readInteger[T Integer](dec *Decoder, off uint32) (T, error) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		v, err := dec.ReadU8(off)
		return any(v).(T), err
	case int8:
		v, err := dec.ReadI8(off)
		return any(v).(T), err
	case uint16:
		v, err := dec.ReadU16(off)
		return any(v).(T), err
	case int16:
		v, err := dec.ReadI16(off)
		return any(v).(T), err
	case uint32:
		v, err := dec.ReadU32(off)
		return any(v).(T), err
	case int32:
		v, err := dec.ReadI32(off)
		return any(v).(T), err
	case uint64:
		v, err := dec.ReadU64(off)
		return any(v).(T), err
	case int64:
		v, err := dec.ReadI64(off)
		return any(v).(T), err
	default:
		panic("nanoflat: unreachable integer kind")
	}
}

// EncodeScalarField runs the value phase for a required fixed-width
// integer field: write it inline and remember where.
func EncodeScalarField[T Integer](enc *Encoder, tableStart uint32, v T) (EncodeWV, error) {
	off, err := appendInteger(enc, v)
	if err != nil {
		return EncodeWV{}, err
	}
	return EncodeWV{present: true, tableStart: tableStart, valueOffset: off}, nil
}

// EncodeIndirectField runs the value phase for any field whose storage is
// out-of-line (a nested table, a vector, or a string): reserve a 4-byte
// relative-offset placeholder now, to be resolved by EncodePostIndirect
// once the out-of-line body has been written.
func EncodeIndirectField(enc *Encoder, tableStart uint32) (EncodeWV, error) {
	off, err := enc.AppendI32(0)
	if err != nil {
		return EncodeWV{}, err
	}
	return EncodeWV{present: true, tableStart: tableStart, valueOffset: off}, nil
}

// EncodeVTableEntry runs the vtable-entry phase shared by every field kind:
// a present field contributes (valueOffset - tableStart) as a u16; an
// absent one contributes 0.
func EncodeVTableEntry(enc *Encoder, wv EncodeWV) error {
	if !wv.present {
		_, err := enc.AppendU16(0)
		return err
	}
	_, err := enc.AppendU16(uint16(wv.valueOffset - wv.tableStart))
	return err
}

// EncodePostIndirect writes an out-of-line body via encodeBody, which must
// return the absolute position the body starts at, then patches the
// field's placeholder to the relative offset between the two. A no-op if
// wv names an absent field.
func EncodePostIndirect(enc *Encoder, wv EncodeWV, encodeBody func(*Encoder) (uint32, error)) error {
	if !wv.present {
		return nil
	}
	bodyStart, err := encodeBody(enc)
	if err != nil {
		return err
	}
	return enc.PatchI32At(wv.valueOffset, int32(bodyStart)-int32(wv.valueOffset))
}

// NoPost is a post-encode step for field kinds that never carry
// out-of-line data (fixed-width integers wrapped in Optional, for
// instance).
func NoPost[T any](*Encoder, T, EncodeWV) error { return nil }

// DecodeVTableEntry runs the vtable-entry decode phase shared by every
// field kind: read the u16 entry at cursor and advance by 2.
func DecodeVTableEntry(dec *Decoder, tableStart uint32, cursor uint32) (DecodeWV, uint32, error) {
	entry, err := dec.ReadU16(cursor)
	if err != nil {
		return DecodeWV{}, cursor, err
	}
	return DecodeWV{present: entry != 0, tableStart: tableStart, entry: entry}, cursor + 2, nil
}

// DecodeScalarField materializes a required fixed-width integer field. An
// absent vtable entry is a required-field violation (spec.md §4.2,
// "Absence and optionality").
func DecodeScalarField[T Integer](dec *Decoder, wv DecodeWV) (T, error) {
	var zero T
	if !wv.present {
		return zero, RequiredFieldAbsentError("")
	}
	return readInteger[T](dec, wv.FieldOffset())
}
