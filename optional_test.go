package nanoflat_test

import (
	"testing"

	"github.com/nanoflat/nanoflat"
)

func TestOptionalAbsentDecodesToNone(t *testing.T) {
	buf := make([]byte, 64)
	out, err := nanoflat.EncodeRoot(buf, func(enc *nanoflat.Encoder) (uint32, error) {
		tableStart, err := nanoflat.BeginTable(enc)
		if err != nil {
			return 0, err
		}
		wv0, err := nanoflat.EncodeOptionalField[uint32](enc, tableStart, nanoflat.Optional[uint32]{}, nanoflat.EncodeScalarField[uint32])
		if err != nil {
			return 0, err
		}
		tableEnd := enc.Used()
		if err := nanoflat.WriteVTable(enc, tableStart, tableEnd, func(enc *nanoflat.Encoder) error {
			return nanoflat.EncodeVTableEntry(enc, wv0)
		}); err != nil {
			return 0, err
		}
		return tableStart, nil
	})
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}

	got, err := nanoflat.DecodeRoot(out, func(dec *nanoflat.Decoder, tableStart uint32) (nanoflat.Optional[uint32], error) {
		vtableStart, entriesEnd, err := nanoflat.BeginTableDecode(dec, tableStart)
		if err != nil {
			return nanoflat.Optional[uint32]{}, err
		}
		wv0, _, err := nanoflat.NextFieldEntry(dec, tableStart, vtableStart+4, entriesEnd)
		if err != nil {
			return nanoflat.Optional[uint32]{}, err
		}
		return nanoflat.DecodeOptionalField(dec, wv0, nanoflat.DecodeScalarField[uint32])
	})
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	if got.Valid {
		t.Errorf("absent optional decoded as present: %+v", got)
	}
}

func TestOptionalPresentRoundTrip(t *testing.T) {
	want := nanoflat.Some[uint32](42)

	buf := make([]byte, 64)
	out, err := nanoflat.EncodeRoot(buf, func(enc *nanoflat.Encoder) (uint32, error) {
		tableStart, err := nanoflat.BeginTable(enc)
		if err != nil {
			return 0, err
		}
		wv0, err := nanoflat.EncodeOptionalField(enc, tableStart, want, nanoflat.EncodeScalarField[uint32])
		if err != nil {
			return 0, err
		}
		tableEnd := enc.Used()
		if err := nanoflat.WriteVTable(enc, tableStart, tableEnd, func(enc *nanoflat.Encoder) error {
			return nanoflat.EncodeVTableEntry(enc, wv0)
		}); err != nil {
			return 0, err
		}
		return tableStart, nil
	})
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}

	got, err := nanoflat.DecodeRoot(out, func(dec *nanoflat.Decoder, tableStart uint32) (nanoflat.Optional[uint32], error) {
		vtableStart, entriesEnd, err := nanoflat.BeginTableDecode(dec, tableStart)
		if err != nil {
			return nanoflat.Optional[uint32]{}, err
		}
		wv0, _, err := nanoflat.NextFieldEntry(dec, tableStart, vtableStart+4, entriesEnd)
		if err != nil {
			return nanoflat.Optional[uint32]{}, err
		}
		return nanoflat.DecodeOptionalField(dec, wv0, nanoflat.DecodeScalarField[uint32])
	})
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	if !got.Valid || got.Value != 42 {
		t.Errorf("got %+v, want {Valid:true Value:42}", got)
	}
}
