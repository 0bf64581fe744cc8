package nanoflat

import "encoding/binary"

// Encoder is a forward-append byte-buffer writer. It owns no storage of its
// own: the caller supplies a fixed-capacity slice up front, and Encoder
// never grows or reallocates it, so it can run without a dynamic allocator.
//
// Writes advance a monotonically increasing cursor (Used). Patch operations
// write at a position returned by an earlier append without moving the
// cursor; the caller is responsible for ensuring no later append has
// overlapped that position.
type Encoder struct {
	buf  []byte
	used uint32
}

// NewEncoder wraps buf for writing. buf's capacity bounds everything the
// Encoder can produce; Encoder never resizes it.
func NewEncoder(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

// Used returns the number of bytes written so far.
func (e *Encoder) Used() uint32 { return e.used }

// Finalize returns the written prefix of the underlying buffer. The
// returned slice aliases the Encoder's storage and must not be mutated
// afterward if the Encoder is reused.
func (e *Encoder) Finalize() []byte {
	return e.buf[:e.used]
}

// PadToAlign advances Used to the next multiple of align, zero-filling the
// padding. align must be a power of two.
func (e *Encoder) PadToAlign(align uint32) error {
	padding := (align - e.used%align) % align
	if padding == 0 {
		return nil
	}
	if uint32(len(e.buf))-e.used < padding {
		return OffsetOutOfRangeError{Offset: e.used, Length: int(padding), Cap: len(e.buf)}
	}
	for i := uint32(0); i < padding; i++ {
		e.buf[e.used+i] = 0
	}
	e.used += padding
	return nil
}

func (e *Encoder) reserve(width uint32) (uint32, error) {
	if err := e.PadToAlign(width); err != nil {
		return 0, err
	}
	if uint32(len(e.buf))-e.used < width {
		return 0, OffsetOutOfRangeError{Offset: e.used, Length: int(width), Cap: len(e.buf)}
	}
	offset := e.used
	e.used += width
	return offset, nil
}

// AppendU8 writes an unsigned 8-bit value and returns the position written to.
func (e *Encoder) AppendU8(v uint8) (uint32, error) {
	off, err := e.reserve(1)
	if err != nil {
		return 0, err
	}
	e.buf[off] = v
	return off, nil
}

// AppendI8 writes a signed 8-bit value and returns the position written to.
func (e *Encoder) AppendI8(v int8) (uint32, error) { return e.AppendU8(uint8(v)) }

// AppendU16 writes a little-endian unsigned 16-bit value aligned to 2 bytes.
func (e *Encoder) AppendU16(v uint16) (uint32, error) {
	off, err := e.reserve(2)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint16(e.buf[off:], v)
	return off, nil
}

// AppendI16 writes a little-endian signed 16-bit value aligned to 2 bytes.
func (e *Encoder) AppendI16(v int16) (uint32, error) { return e.AppendU16(uint16(v)) }

// AppendU32 writes a little-endian unsigned 32-bit value aligned to 4 bytes.
func (e *Encoder) AppendU32(v uint32) (uint32, error) {
	off, err := e.reserve(4)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint32(e.buf[off:], v)
	return off, nil
}

// AppendI32 writes a little-endian signed 32-bit value aligned to 4 bytes.
func (e *Encoder) AppendI32(v int32) (uint32, error) { return e.AppendU32(uint32(v)) }

// AppendU64 writes a little-endian unsigned 64-bit value aligned to 8 bytes.
func (e *Encoder) AppendU64(v uint64) (uint32, error) {
	off, err := e.reserve(8)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint64(e.buf[off:], v)
	return off, nil
}

// AppendI64 writes a little-endian signed 64-bit value aligned to 8 bytes.
func (e *Encoder) AppendI64(v int64) (uint32, error) { return e.AppendU64(uint64(v)) }

// PatchU16At overwrites the 2 bytes at off without moving Used. off must
// have been returned by a previous append on this Encoder.
func (e *Encoder) PatchU16At(off uint32, v uint16) error {
	if uint32(len(e.buf))-off < 2 {
		return OffsetOutOfRangeError{Offset: off, Length: 2, Cap: len(e.buf)}
	}
	binary.LittleEndian.PutUint16(e.buf[off:], v)
	return nil
}

// PatchI32At overwrites the 4 bytes at off without moving Used.
func (e *Encoder) PatchI32At(off uint32, v int32) error {
	if uint32(len(e.buf))-off < 4 {
		return OffsetOutOfRangeError{Offset: off, Length: 4, Cap: len(e.buf)}
	}
	binary.LittleEndian.PutUint32(e.buf[off:], uint32(v))
	return nil
}
