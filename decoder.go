package nanoflat

import "encoding/binary"

// Decoder is a random-access byte-buffer reader. Every read is bounds
// checked against the underlying slice; no read ever looks past its end.
type Decoder struct {
	buf []byte
}

// NewDecoder wraps buf for reading. The returned Decoder never mutates buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Len reports the size of the decoded slice.
func (d *Decoder) Len() int { return len(d.buf) }

func (d *Decoder) bytesAt(off uint32, n int) ([]byte, error) {
	if off > uint32(len(d.buf)) || uint32(len(d.buf))-off < uint32(n) {
		return nil, ReadOutOfRangeError{Offset: off, Length: n, Size: len(d.buf)}
	}
	return d.buf[off : off+uint32(n)], nil
}

// ReadU8 reads an unsigned 8-bit value at off.
func (d *Decoder) ReadU8(off uint32) (uint8, error) {
	b, err := d.bytesAt(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a signed 8-bit value at off.
func (d *Decoder) ReadI8(off uint32) (int8, error) {
	v, err := d.ReadU8(off)
	return int8(v), err
}

// ReadU16 reads a little-endian unsigned 16-bit value at off.
func (d *Decoder) ReadU16(off uint32) (uint16, error) {
	b, err := d.bytesAt(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian signed 16-bit value at off.
func (d *Decoder) ReadI16(off uint32) (int16, error) {
	v, err := d.ReadU16(off)
	return int16(v), err
}

// ReadU32 reads a little-endian unsigned 32-bit value at off.
func (d *Decoder) ReadU32(off uint32) (uint32, error) {
	b, err := d.bytesAt(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian signed 32-bit value at off.
func (d *Decoder) ReadI32(off uint32) (int32, error) {
	v, err := d.ReadU32(off)
	return int32(v), err
}

// ReadU64 reads a little-endian unsigned 64-bit value at off.
func (d *Decoder) ReadU64(off uint32) (uint64, error) {
	b, err := d.bytesAt(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian signed 64-bit value at off.
func (d *Decoder) ReadI64(off uint32) (int64, error) {
	v, err := d.ReadU64(off)
	return int64(v), err
}

// ResolveOffset reads the relative i32 offset stored at pos and returns the
// absolute position it points to. Every out-of-line field (table, vector,
// string, union payload) is stored this way: a 4-byte signed displacement
// from the slot holding it to the data it names.
func (d *Decoder) ResolveOffset(pos uint32) (uint32, error) {
	rel, err := d.ReadI32(pos)
	if err != nil {
		return 0, err
	}
	return uint32(int64(pos) + int64(rel)), nil
}
