package gguf

import "testing"

func TestEstimateSize(t *testing.T) {
	tests := []struct {
		name string
		typ  TensorType
		dims []uint64
		want uint64
	}{
		{"F32 1D", TensorTypeF32, []uint64{100}, 400},
		{"F32 2D", TensorTypeF32, []uint64{10, 20}, 800},
		{"F16 1D", TensorTypeF16, []uint64{100}, 200},
		{"Q4_0", TensorTypeQ4_0, []uint64{256}, 256},
		{"Q4_K", TensorTypeQ4_K, []uint64{256, 4}, 1024},
		{"Q6_K", TensorTypeQ6_K, []uint64{512}, 512},
		{"unknown tag defaults to 4", TensorType(77), []uint64{10}, 40},
		{"rank 0 scalar", TensorTypeF32, nil, 4},
		{"rank 0 unknown", TensorType(77), nil, 4},
		{"zero extent", TensorTypeF32, []uint64{0, 8}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateSize(tt.typ, tt.dims); got != tt.want {
				t.Errorf("EstimateSize(%v, %v) = %d, want %d", tt.typ, tt.dims, got, tt.want)
			}
		})
	}
}

func TestTensorDescriptorElements(t *testing.T) {
	td := TensorDescriptor{Dims: []uint64{3, 4, 5}}
	if got := td.Elements(); got != 60 {
		t.Errorf("Elements() = %d, want 60", got)
	}
	scalar := TensorDescriptor{}
	if got := scalar.Elements(); got != 1 {
		t.Errorf("rank-0 Elements() = %d, want 1", got)
	}
}
