package gguf

import (
	"fmt"
	"io"
)

// Parse failures carry the byte offset of the field that broke, so corrupt
// input can be diagnosed without a hex editor session.

type BadMagicError struct{ Magic uint32 }

func (e BadMagicError) Error() string {
	return fmt.Sprintf("invalid GGUF magic: 0x%08x", e.Magic)
}

type UnsupportedVersionError struct{ Version uint32 }

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported GGUF version: %d", e.Version)
}

type TruncatedInputError struct {
	Offset uint64
	Field  string
}

func (e TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input: EOF reading %s at offset %d", e.Field, e.Offset)
}

func (e TruncatedInputError) Unwrap() error { return io.ErrUnexpectedEOF }

type OversizedFieldError struct {
	Offset uint64
	Field  string
	Length uint64
	Max    uint64
}

func (e OversizedFieldError) Error() string {
	return fmt.Sprintf("oversized %s at offset %d: declared length %d exceeds limit %d",
		e.Field, e.Offset, e.Length, e.Max)
}

type InvalidEncodingError struct {
	Offset uint64
	Field  string
}

func (e InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid encoding: %s at offset %d is not valid UTF-8", e.Field, e.Offset)
}

type UnsupportedValueTypeError struct {
	Offset uint64
	Type   ValueType
}

func (e UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("unsupported metadata value type %d at offset %d", uint32(e.Type), e.Offset)
}

type UnsupportedArrayElementTypeError struct {
	Offset uint64
	Elem   ValueType
}

func (e UnsupportedArrayElementTypeError) Error() string {
	return fmt.Sprintf("unsupported array element type %d at offset %d", uint32(e.Elem), e.Offset)
}
