package nanoflat_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nanoflat/nanoflat"
)

func encodeU32Vector(enc *nanoflat.Encoder, tableStart uint32, v nanoflat.Vector[uint32]) (nanoflat.EncodeWV, error) {
	return nanoflat.EncodeVectorField(enc, tableStart, v)
}

func TestVectorEmptyEncodesAbsent(t *testing.T) {
	buf := make([]byte, 64)
	enc := nanoflat.NewEncoder(buf)
	wv, err := encodeU32Vector(enc, 0, nanoflat.Vector[uint32]{})
	if err != nil {
		t.Fatalf("EncodeVectorField: %v", err)
	}
	if wv.Present() {
		t.Errorf("empty vector working value reports present")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	want := nanoflat.VectorOf[uint32](1, 2, 3, 4)

	buf := make([]byte, 64)
	out, err := nanoflat.EncodeRoot(buf, func(enc *nanoflat.Encoder) (uint32, error) {
		tableStart, err := nanoflat.BeginTable(enc)
		if err != nil {
			return 0, err
		}
		wv0, err := nanoflat.EncodeVectorField(enc, tableStart, want)
		if err != nil {
			return 0, err
		}
		tableEnd := enc.Used()
		if err := nanoflat.WriteVTable(enc, tableStart, tableEnd, func(enc *nanoflat.Encoder) error {
			return nanoflat.EncodeVTableEntry(enc, wv0)
		}); err != nil {
			return 0, err
		}
		if err := nanoflat.EncodePostVectorField(enc, want, wv0, nanoflat.EncodeScalarField[uint32], nanoflat.NoPost[uint32]); err != nil {
			return 0, err
		}
		return tableStart, nil
	})
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}

	got, err := nanoflat.DecodeRoot(out, func(dec *nanoflat.Decoder, tableStart uint32) (nanoflat.Vector[uint32], error) {
		_, entriesEnd, err := nanoflat.BeginTableDecode(dec, tableStart)
		if err != nil {
			return nanoflat.Vector[uint32]{}, err
		}
		vtableStart, _, err := nanoflat.BeginTableDecode(dec, tableStart)
		if err != nil {
			return nanoflat.Vector[uint32]{}, err
		}
		wv0, _, err := nanoflat.NextFieldEntry(dec, tableStart, vtableStart+4, entriesEnd)
		if err != nil {
			return nanoflat.Vector[uint32]{}, err
		}
		return nanoflat.DecodeVectorField[uint32](dec, wv0, 4, (*nanoflat.Decoder).ReadU32)
	})
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	if diff := cmp.Diff(want.Items, got.Items); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}
