package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-shard/internal/gguf"
	"github.com/23skdu/longbow-shard/internal/split"
)

func testPlan(t *testing.T) split.Plan {
	t.Helper()
	catalog := gguf.Catalog{
		{Name: "token_embd.weight", Dims: []uint64{32, 8}, Type: gguf.TensorTypeF32, Offset: 512, Size: 1024},
		{Name: "blk.0.ffn_up.weight", Dims: []uint64{64}, Type: gguf.TensorTypeQ4_K, Offset: 1536, Size: 64},
		{Name: "output.weight", Dims: []uint64{16}, Type: gguf.TensorTypeF16, Offset: 1600, Size: 32},
	}
	plan, err := split.NewPlan(catalog, 2, "out")
	require.NoError(t, err)
	return plan
}

func TestNewRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	rec := NewRecord(mem, testPlan(t))
	defer rec.Release()

	require.EqualValues(t, 3, rec.NumRows())
	require.EqualValues(t, 8, rec.NumCols())

	names := rec.Column(0).(*array.String)
	assert.Equal(t, "token_embd.weight", names.Value(0))
	assert.Equal(t, "output.weight", names.Value(2))

	typeNames := rec.Column(3).(*array.String)
	assert.Equal(t, "F32", typeNames.Value(0))
	assert.Equal(t, "Q4_K", typeNames.Value(1))

	shards := rec.Column(6).(*array.Int32)
	assert.Equal(t, int32(0), shards.Value(0))
	assert.Equal(t, int32(0), shards.Value(1))
	assert.Equal(t, int32(1), shards.Value(2))
}

func TestWriteManifestRoundTrip(t *testing.T) {
	plan := testPlan(t)
	path := filepath.Join(t.TempDir(), "manifest.arrow")
	require.NoError(t, WriteManifest(path, plan))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r, err := ipc.NewFileReader(f)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 1, r.NumRecords())
	rec, err := r.Read()
	require.NoError(t, err)

	assert.True(t, Schema().Equal(rec.Schema()))
	require.EqualValues(t, 3, rec.NumRows())

	sizes := rec.Column(5).(*array.Uint64)
	assert.Equal(t, uint64(1024), sizes.Value(0))
	assert.Equal(t, uint64(32), sizes.Value(2))

	dims := rec.Column(1).(*array.List)
	vals := dims.ListValues().(*array.Uint64)
	start, end := dims.ValueOffsets(0)
	require.EqualValues(t, 2, end-start)
	assert.Equal(t, uint64(32), vals.Value(int(start)))
	assert.Equal(t, uint64(8), vals.Value(int(start)+1))
}
