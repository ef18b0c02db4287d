package gguf

// elementSizes is an approximation table: bytes per element by type tag.
// Block-quantized encodings do not really cost a fixed amount per element
// (Q4_K packs 256 elements into 144 bytes), so quantized tags round to one
// byte and anything unlisted to four. Callers must treat EstimateSize as
// best-effort; an exact per-format codec can replace this table without
// touching the reader or writer.
var elementSizes = map[TensorType]uint64{
	TensorTypeF32:  4,
	TensorTypeF16:  2,
	TensorTypeQ4_0: 1,
	TensorTypeQ4_1: 1,
	TensorTypeQ5_0: 1,
	TensorTypeQ5_1: 1,
	TensorTypeQ8_0: 1,
	TensorTypeQ8_1: 1,
	TensorTypeQ2_K: 1,
	TensorTypeQ3_K: 1,
	TensorTypeQ4_K: 1,
	TensorTypeQ5_K: 1,
	TensorTypeQ6_K: 1,
	TensorTypeQ8_K: 1,
}

const defaultElementSize = 4

// EstimateSize returns the estimated byte length of a tensor with the given
// type tag and extents. Rank 0 is a scalar and yields one element's size.
func EstimateSize(t TensorType, dims []uint64) uint64 {
	size, ok := elementSizes[t]
	if !ok {
		size = defaultElementSize
	}
	n := uint64(1)
	for _, d := range dims {
		n *= d
	}
	return n * size
}
