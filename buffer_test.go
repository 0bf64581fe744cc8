package nanoflat_test

import (
	"errors"
	"testing"

	"github.com/nanoflat/nanoflat"
)

func TestEncoderAlignment(t *testing.T) {
	tests := []struct {
		name  string
		write func(enc *nanoflat.Encoder) (uint32, error)
		align uint32
	}{
		{"u16", func(enc *nanoflat.Encoder) (uint32, error) { return enc.AppendU16(1) }, 2},
		{"u32", func(enc *nanoflat.Encoder) (uint32, error) { return enc.AppendU32(1) }, 4},
		{"u64", func(enc *nanoflat.Encoder) (uint32, error) { return enc.AppendU64(1) }, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 64)
			enc := nanoflat.NewEncoder(buf)
			// Push the cursor off-alignment first.
			if _, err := enc.AppendU8(0xAA); err != nil {
				t.Fatalf("AppendU8: %v", err)
			}
			off, err := tt.write(enc)
			if err != nil {
				t.Fatalf("write: %v", err)
			}
			if off%tt.align != 0 {
				t.Errorf("offset %d not aligned to %d", off, tt.align)
			}
		})
	}
}

func TestEncoderOutOfSpace(t *testing.T) {
	buf := make([]byte, 3)
	enc := nanoflat.NewEncoder(buf)
	if _, err := enc.AppendU32(1); err == nil {
		t.Fatal("AppendU32 into 3-byte buffer: want error, got nil")
	} else if !errors.Is(err, nanoflat.ErrOutOfSpace) {
		t.Errorf("got error %v, want ErrOutOfSpace", err)
	}
}

func TestEncoderFinalizeTightness(t *testing.T) {
	buf := make([]byte, 64)
	enc := nanoflat.NewEncoder(buf)
	if _, err := enc.AppendU8(1); err != nil {
		t.Fatalf("AppendU8: %v", err)
	}
	if _, err := enc.AppendU32(2); err != nil {
		t.Fatalf("AppendU32: %v", err)
	}
	out := enc.Finalize()
	if uint32(len(out)) != enc.Used() {
		t.Errorf("len(Finalize()) = %d, Used() = %d", len(out), enc.Used())
	}
}

func TestPatchDoesNotAdvanceUsed(t *testing.T) {
	buf := make([]byte, 64)
	enc := nanoflat.NewEncoder(buf)
	off, err := enc.AppendU16(0)
	if err != nil {
		t.Fatalf("AppendU16: %v", err)
	}
	before := enc.Used()
	if err := enc.PatchU16At(off, 42); err != nil {
		t.Fatalf("PatchU16At: %v", err)
	}
	if enc.Used() != before {
		t.Errorf("Used() changed from %d to %d after patch", before, enc.Used())
	}
	dec := nanoflat.NewDecoder(enc.Finalize())
	got, err := dec.ReadU16(off)
	if err != nil {
		t.Fatalf("ReadU16: %v", err)
	}
	if got != 42 {
		t.Errorf("ReadU16(%d) = %d, want 42", off, got)
	}
}

func TestDecoderReadOutOfRange(t *testing.T) {
	dec := nanoflat.NewDecoder([]byte{1, 2, 3})
	if _, err := dec.ReadU32(0); err == nil {
		t.Fatal("ReadU32 past end of 3-byte slice: want error, got nil")
	} else if !errors.Is(err, nanoflat.ErrInvalidData) {
		t.Errorf("got error %v, want ErrInvalidData", err)
	}
}

func TestResolveOffsetRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	enc := nanoflat.NewEncoder(buf)
	slot, err := enc.AppendI32(0)
	if err != nil {
		t.Fatalf("AppendI32: %v", err)
	}
	target, err := enc.AppendU32(0xCAFE)
	if err != nil {
		t.Fatalf("AppendU32: %v", err)
	}
	if err := enc.PatchI32At(slot, int32(target)-int32(slot)); err != nil {
		t.Fatalf("PatchI32At: %v", err)
	}
	dec := nanoflat.NewDecoder(enc.Finalize())
	got, err := dec.ResolveOffset(slot)
	if err != nil {
		t.Fatalf("ResolveOffset: %v", err)
	}
	if got != target {
		t.Errorf("ResolveOffset(%d) = %d, want %d", slot, got, target)
	}
}
