package gguf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// decodeValue decodes one metadata value for the given type tag. The tag
// space is a closed enumeration: an unknown tag is a hard error, never a
// guessed-width skip, because a wrong guess desynchronizes the cursor from
// the true field boundary and silently corrupts every later read.
func (d *decoder) decodeValue(t ValueType) (Value, error) {
	if t.scalar() {
		v, err := d.decodeScalar(t, "value")
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, Any: v}, nil
	}
	if t != ValueTypeArray {
		return Value{}, UnsupportedValueTypeError{Offset: d.pos, Type: t}
	}

	elemTag, err := d.u32("array element type")
	if err != nil {
		return Value{}, err
	}
	elem := ValueType(elemTag)
	count, err := d.u64("array length")
	if err != nil {
		return Value{}, err
	}
	if count > d.limits.MaxArrayElems {
		return Value{}, OversizedFieldError{
			Offset: d.pos, Field: "array length", Length: count, Max: d.limits.MaxArrayElems,
		}
	}
	if !elem.scalar() {
		// Nested arrays and unknown tags alike: no element decoder exists.
		return Value{}, UnsupportedArrayElementTypeError{Offset: d.pos, Elem: elem}
	}

	arr := make([]any, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := d.decodeScalar(elem, "array element")
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, v)
	}
	return Value{Type: ValueTypeArray, Elem: elem, Any: arr}, nil
}

func (d *decoder) decodeScalar(t ValueType, field string) (any, error) {
	switch t {
	case ValueTypeUint8:
		return d.u8(field)
	case ValueTypeInt8:
		return d.i8(field)
	case ValueTypeUint16:
		return d.u16(field)
	case ValueTypeInt16:
		return d.i16(field)
	case ValueTypeUint32:
		return d.u32(field)
	case ValueTypeInt32:
		return d.i32(field)
	case ValueTypeFloat32:
		return d.f32(field)
	case ValueTypeBool:
		return d.boolean(field)
	case ValueTypeString:
		return d.str(field)
	default:
		return nil, UnsupportedValueTypeError{Offset: d.pos, Type: t}
	}
}

// WriteString writes a length-prefixed string in wire layout.
func WriteString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// WriteValue re-encodes a decoded metadata value, type tag included. It is
// the exact inverse of the decoder, used when metadata is propagated into
// shard outputs.
func WriteValue(w io.Writer, v Value) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(v.Type)); err != nil {
		return err
	}
	if v.Type != ValueTypeArray {
		return writeScalar(w, v.Any)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(v.Elem)); err != nil {
		return err
	}
	arr, ok := v.Any.([]any)
	if !ok {
		return fmt.Errorf("array value holds %T, want []any", v.Any)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(arr))); err != nil {
		return err
	}
	for _, e := range arr {
		if err := writeScalar(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeScalar(w io.Writer, v any) error {
	switch s := v.(type) {
	case uint8, int8, uint16, int16, uint32, int32, float32:
		return binary.Write(w, binary.LittleEndian, s)
	case bool:
		b := uint8(0)
		if s {
			b = 1
		}
		return binary.Write(w, binary.LittleEndian, b)
	case string:
		return WriteString(w, s)
	default:
		return fmt.Errorf("unencodable metadata scalar type %T", v)
	}
}
