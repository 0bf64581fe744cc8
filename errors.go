package nanoflat

import (
	"errors"
	"fmt"
)

// ErrOutOfSpace is returned when the caller-supplied buffer cannot fit the
// next write, including any alignment padding it requires.
var ErrOutOfSpace = errors.New("nanoflat: not enough space in buffer")

// ErrInvalidStructure is returned when a value being encoded violates a
// structural precondition, such as an optional/required mismatch between a
// field's value and its working value.
var ErrInvalidStructure = errors.New("nanoflat: invalid value structure")

// ErrInvalidData is returned for any bounds violation, malformed offset,
// unknown union discriminant, or required-field-absent condition found
// while decoding.
var ErrInvalidData = errors.New("nanoflat: invalid data")

// ErrCollectionOverflow is returned by bounded-container decoding when a
// vector or string exceeds the container's declared capacity.
var ErrCollectionOverflow = errors.New("nanoflat: collection exceeds bounded capacity")

// OffsetOutOfRangeError reports an encoder write, padding or patch that
// would fall outside the buffer's capacity.
type OffsetOutOfRangeError struct {
	Offset uint32
	Length int
	Cap    int
}

func (e OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("nanoflat: offset %d (len %d) outside buffer of capacity %d", e.Offset, e.Length, e.Cap)
}

func (e OffsetOutOfRangeError) Unwrap() error { return ErrOutOfSpace }

// ReadOutOfRangeError reports a decode read that fell outside the decoded
// slice.
type ReadOutOfRangeError struct {
	Offset uint32
	Length int
	Size   int
}

func (e ReadOutOfRangeError) Error() string {
	return fmt.Sprintf("nanoflat: read at %d (len %d) outside buffer of size %d", e.Offset, e.Length, e.Size)
}

func (e ReadOutOfRangeError) Unwrap() error { return ErrInvalidData }

// UnknownDiscriminantError reports a union discriminant byte that does not
// name any declared variant.
type UnknownDiscriminantError uint8

func (e UnknownDiscriminantError) Error() string {
	return fmt.Sprintf("nanoflat: unknown union discriminant %d", uint8(e))
}

func (e UnknownDiscriminantError) Unwrap() error { return ErrInvalidData }

// MissingPayloadError reports a union whose discriminant names a variant
// but whose payload offset slot is zero.
type MissingPayloadError uint8

func (e MissingPayloadError) Error() string {
	return fmt.Sprintf("nanoflat: union variant %d has no payload offset", uint8(e))
}

func (e MissingPayloadError) Unwrap() error { return ErrInvalidData }

// RequiredFieldAbsentError reports a required (non-optional) field whose
// vtable entry is absent.
type RequiredFieldAbsentError string

func (e RequiredFieldAbsentError) Error() string {
	return fmt.Sprintf("nanoflat: required field %q is absent", string(e))
}

func (e RequiredFieldAbsentError) Unwrap() error { return ErrInvalidData }

// NestedVectorError reports an attempt to decode a vector whose element
// type is itself a vector, which the format does not support.
type NestedVectorError struct{}

func (NestedVectorError) Error() string { return "nanoflat: nested vectors are not supported" }

func (NestedVectorError) Unwrap() error { return ErrInvalidData }
