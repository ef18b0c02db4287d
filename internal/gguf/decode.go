package gguf

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// decoder reads little-endian primitives off a byte stream, tracking the
// absolute position so every failure names the offset it happened at. All
// reads go through readFull; there is no second position-tracking path.
type decoder struct {
	r       io.Reader
	pos     uint64
	limits  Limits
	scratch [8]byte
}

func newDecoder(r io.Reader, limits Limits) *decoder {
	return &decoder{r: r, limits: limits}
}

func (d *decoder) readFull(buf []byte, field string) error {
	n, err := io.ReadFull(d.r, buf)
	d.pos += uint64(n)
	if err != nil {
		return TruncatedInputError{Offset: d.pos, Field: field}
	}
	return nil
}

func (d *decoder) u8(field string) (uint8, error) {
	b := d.scratch[:1]
	if err := d.readFull(b, field); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) i8(field string) (int8, error) {
	v, err := d.u8(field)
	return int8(v), err
}

func (d *decoder) u16(field string) (uint16, error) {
	b := d.scratch[:2]
	if err := d.readFull(b, field); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *decoder) i16(field string) (int16, error) {
	v, err := d.u16(field)
	return int16(v), err
}

func (d *decoder) u32(field string) (uint32, error) {
	b := d.scratch[:4]
	if err := d.readFull(b, field); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) i32(field string) (int32, error) {
	v, err := d.u32(field)
	return int32(v), err
}

func (d *decoder) u64(field string) (uint64, error) {
	b := d.scratch[:8]
	if err := d.readFull(b, field); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *decoder) f32(field string) (float32, error) {
	v, err := d.u32(field)
	return math.Float32frombits(v), err
}

func (d *decoder) boolean(field string) (bool, error) {
	v, err := d.u8(field)
	return v != 0, err
}

// str reads an 8-byte length then that many UTF-8 bytes. The length is
// checked against the limit before the payload buffer is allocated.
func (d *decoder) str(field string) (string, error) {
	length, err := d.u64(field + " length")
	if err != nil {
		return "", err
	}
	if length > d.limits.MaxStringBytes {
		return "", OversizedFieldError{
			Offset: d.pos, Field: field, Length: length, Max: d.limits.MaxStringBytes,
		}
	}
	start := d.pos
	buf := make([]byte, length)
	if err := d.readFull(buf, field); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", InvalidEncodingError{Offset: start, Field: field}
	}
	return string(buf), nil
}
