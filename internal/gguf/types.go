package gguf

import "fmt"

const (
	// Magic is "GGUF" read as a little-endian uint32.
	Magic = 0x46554747

	// Version is the only container layout this package speaks. The split
	// header carries two metadata counts (general + tensor), which is a v3
	// construct; older versions lay the header out differently.
	Version = 3
)

// ValueType tags a metadata value on the wire.
type ValueType uint32

const (
	ValueTypeUint8   ValueType = 0
	ValueTypeInt8    ValueType = 1
	ValueTypeUint16  ValueType = 2
	ValueTypeInt16   ValueType = 3
	ValueTypeUint32  ValueType = 4
	ValueTypeInt32   ValueType = 5
	ValueTypeFloat32 ValueType = 6
	ValueTypeBool    ValueType = 7
	ValueTypeString  ValueType = 8
	ValueTypeArray   ValueType = 9
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeUint8:
		return "UINT8"
	case ValueTypeInt8:
		return "INT8"
	case ValueTypeUint16:
		return "UINT16"
	case ValueTypeInt16:
		return "INT16"
	case ValueTypeUint32:
		return "UINT32"
	case ValueTypeInt32:
		return "INT32"
	case ValueTypeFloat32:
		return "FLOAT32"
	case ValueTypeBool:
		return "BOOL"
	case ValueTypeString:
		return "STRING"
	case ValueTypeArray:
		return "ARRAY"
	default:
		return fmt.Sprintf("UNKNOWN_VALUE_TYPE_%d", uint32(t))
	}
}

// scalar reports whether the tag is a fixed-width scalar or string, i.e.
// usable as an array element.
func (t ValueType) scalar() bool {
	return t <= ValueTypeString
}

// TensorType is the element encoding code of a tensor.
type TensorType uint32

const (
	TensorTypeF32  TensorType = 0
	TensorTypeF16  TensorType = 1
	TensorTypeQ4_0 TensorType = 2
	TensorTypeQ4_1 TensorType = 3
	TensorTypeQ5_0 TensorType = 6
	TensorTypeQ5_1 TensorType = 7
	TensorTypeQ8_0 TensorType = 8
	TensorTypeQ8_1 TensorType = 9
	TensorTypeQ2_K TensorType = 10
	TensorTypeQ3_K TensorType = 11
	TensorTypeQ4_K TensorType = 12
	TensorTypeQ5_K TensorType = 13
	TensorTypeQ6_K TensorType = 14
	TensorTypeQ8_K TensorType = 15
)

func (t TensorType) String() string {
	switch t {
	case TensorTypeF32:
		return "F32"
	case TensorTypeF16:
		return "F16"
	case TensorTypeQ4_0:
		return "Q4_0"
	case TensorTypeQ4_1:
		return "Q4_1"
	case TensorTypeQ5_0:
		return "Q5_0"
	case TensorTypeQ5_1:
		return "Q5_1"
	case TensorTypeQ8_0:
		return "Q8_0"
	case TensorTypeQ8_1:
		return "Q8_1"
	case TensorTypeQ2_K:
		return "Q2_K"
	case TensorTypeQ3_K:
		return "Q3_K"
	case TensorTypeQ4_K:
		return "Q4_K"
	case TensorTypeQ5_K:
		return "Q5_K"
	case TensorTypeQ6_K:
		return "Q6_K"
	case TensorTypeQ8_K:
		return "Q8_K"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint32(t))
	}
}

// Value is one decoded metadata entry. Scalar kinds hold their native Go
// value in Any (uint8, int8, ..., float32, bool, string); arrays hold []any
// in Any and keep the element tag in Elem so the entry can be re-encoded.
type Value struct {
	Type ValueType
	Elem ValueType // meaningful only when Type == ValueTypeArray
	Any  any
}

// Metadata is the general key/value table of one parsed file. Last write
// wins on duplicate keys; insertion order is not part of the contract.
type Metadata map[string]Value

// TensorDescriptor locates one tensor inside the source file. Offset is the
// absolute byte offset of the tensor's data; Size is filled from
// EstimateSize immediately after parse and never mutated.
type TensorDescriptor struct {
	Name   string
	Dims   []uint64
	Type   TensorType
	Offset uint64
	Size   uint64
}

// Elements is the element count implied by Dims. Rank 0 is a scalar.
func (t *TensorDescriptor) Elements() uint64 {
	n := uint64(1)
	for _, d := range t.Dims {
		n *= d
	}
	return n
}

// Catalog is the ordered tensor list, in descriptor-block order. That
// order is the only ordering contract downstream code may rely on.
type Catalog []TensorDescriptor

// Limits bound attacker- or corruption-controlled length fields. A declared
// length past its limit fails the parse before any allocation.
type Limits struct {
	MaxStringBytes uint64
	MaxArrayElems  uint64
}

// DefaultLimits matches the bounds the split pipeline has always shipped
// with: 1 MiB strings, one million array elements.
func DefaultLimits() Limits {
	return Limits{
		MaxStringBytes: 1 << 20,
		MaxArrayElems:  1_000_000,
	}
}
