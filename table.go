package nanoflat

// Table implements the generic table codec algorithm (spec.md §4.3) as a
// sequence of building blocks a generated per-record encoder/decoder
// composes in order. Go has no macros, so where the original derives one
// monomorphic procedure per record at compile time, the generator here
// emits ordinary Go source that calls straight through these helpers —
// the field loop is unrolled into generated statements rather than driven
// by a runtime descriptor table.

// BeginTable reserves a table's leading soffset-to-vtable slot and
// returns its position. Every field's value phase is encoded relative to
// this position as tableStart.
func BeginTable(enc *Encoder) (uint32, error) {
	return enc.AppendI32(0)
}

// WriteVTable appends a table's vtable once its fields have finished
// their value phase, and patches the table's soffset slot to reference
// it. tableEnd is the buffer position immediately after the last field's
// value phase (the boundary between the table's inline field region and
// whatever was encoded after it). writeEntries must append exactly one
// EncodeVTableEntry call per vtable slot, in declaration order (two for a
// union field).
func WriteVTable(enc *Encoder, tableStart uint32, tableEnd uint32, writeEntries func(*Encoder) error) error {
	vtablePos, err := enc.AppendU16(0)
	if err != nil {
		return err
	}
	if err := enc.PatchI32At(tableStart, int32(tableStart)-int32(vtablePos)); err != nil {
		return err
	}
	if _, err := enc.AppendU16(uint16(tableEnd - tableStart)); err != nil {
		return err
	}
	if err := writeEntries(enc); err != nil {
		return err
	}
	vtableEnd := enc.Used()
	return enc.PatchU16At(vtablePos, uint16(vtableEnd-vtablePos))
}

// BeginTableDecode resolves tableStart's vtable and reads its header,
// returning the absolute bounds of the field-entry region. A reader built
// against a newer schema bounds its field reads by entriesEnd rather than
// a hardcoded field count, so a shorter (older) vtable is read as all
// trailing fields absent instead of an out-of-range read (spec.md §9,
// forward/backward compatibility).
func BeginTableDecode(dec *Decoder, tableStart uint32) (vtableStart uint32, entriesEnd uint32, err error) {
	soffset, err := dec.ReadI32(tableStart)
	if err != nil {
		return 0, 0, err
	}
	vtableStart = uint32(int64(tableStart) - int64(soffset))
	vtableSize, err := dec.ReadU16(vtableStart)
	if err != nil {
		return 0, 0, err
	}
	return vtableStart, vtableStart + uint32(vtableSize), nil
}

// NextFieldEntry decodes the next field's vtable entry at cursor, or
// reports it absent without reading past entriesEnd — the mechanism that
// lets an older-schema buffer satisfy a newer reader's trailing optional
// fields as absent (spec.md §9).
func NextFieldEntry(dec *Decoder, tableStart, cursor, entriesEnd uint32) (DecodeWV, uint32, error) {
	if cursor+2 > entriesEnd {
		return DecodeWV{}, cursor + 2, nil
	}
	return DecodeVTableEntry(dec, tableStart, cursor)
}
