package nanoflat_test

import (
	"errors"
	"testing"

	"github.com/nanoflat/nanoflat"
)

func TestRequirePayloadSlotMissing(t *testing.T) {
	_, err := nanoflat.RequirePayloadSlot(1, nanoflat.DecodeWV{})
	if err == nil {
		t.Fatal("RequirePayloadSlot with absent slot: want error, got nil")
	}
	if !errors.Is(err, nanoflat.ErrInvalidData) {
		t.Errorf("got error %v, want ErrInvalidData", err)
	}
}

func TestUnionDiscriminantRequired(t *testing.T) {
	_, err := nanoflat.DecodeUnionDiscriminant(nanoflat.NewDecoder(nil), nanoflat.DecodeWV{})
	if err == nil {
		t.Fatal("DecodeUnionDiscriminant with absent vtable entry: want error, got nil")
	}
}

func TestEncodeUnionPayloadNullary(t *testing.T) {
	buf := make([]byte, 16)
	enc := nanoflat.NewEncoder(buf)
	if _, err := nanoflat.EncodeUnionPayload(enc, 0, false); err != nil {
		t.Fatalf("EncodeUnionPayload: %v", err)
	}
	if enc.Used() != 0 {
		t.Errorf("nullary variant wrote %d bytes, want 0", enc.Used())
	}
}
