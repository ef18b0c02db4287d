// Package catalog exports a split plan's tensor inventory as an Arrow
// record batch, so downstream tooling can track which shard holds which
// tensor without re-parsing every shard file.
package catalog

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/23skdu/longbow-shard/internal/split"
)

// Schema is one row per tensor, in catalog order.
func Schema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "dims", Type: arrow.ListOf(arrow.PrimitiveTypes.Uint64)},
		{Name: "type_tag", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "type_name", Type: arrow.BinaryTypes.String},
		{Name: "source_offset", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "byte_size", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "shard", Type: arrow.PrimitiveTypes.Int32},
		{Name: "shard_path", Type: arrow.BinaryTypes.String},
	}, nil)
}

// NewRecord builds the manifest record for a plan. The caller owns the
// returned record and must Release it.
func NewRecord(mem memory.Allocator, plan split.Plan) arrow.Record {
	b := array.NewRecordBuilder(mem, Schema())
	defer b.Release()

	nameB := b.Field(0).(*array.StringBuilder)
	dimsB := b.Field(1).(*array.ListBuilder)
	dimsVB := dimsB.ValueBuilder().(*array.Uint64Builder)
	tagB := b.Field(2).(*array.Uint32Builder)
	typeB := b.Field(3).(*array.StringBuilder)
	offB := b.Field(4).(*array.Uint64Builder)
	sizeB := b.Field(5).(*array.Uint64Builder)
	shardB := b.Field(6).(*array.Int32Builder)
	pathB := b.Field(7).(*array.StringBuilder)

	for _, g := range plan {
		for i := range g.Tensors {
			td := &g.Tensors[i]
			nameB.Append(td.Name)
			dimsB.Append(true)
			dimsVB.AppendValues(td.Dims, nil)
			tagB.Append(uint32(td.Type))
			typeB.Append(td.Type.String())
			offB.Append(td.Offset)
			sizeB.Append(td.Size)
			shardB.Append(int32(g.Index))
			pathB.Append(g.Path)
		}
	}

	return b.NewRecord()
}

// WriteManifest writes the plan's manifest to path as an Arrow IPC file.
func WriteManifest(path string, plan split.Plan) error {
	mem := memory.DefaultAllocator

	rec := NewRecord(mem, plan)
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("open manifest writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("write manifest record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close manifest writer: %w", err)
	}
	return f.Close()
}
