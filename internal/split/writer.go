package split

import (
	"bufio"
	"encoding/binary"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"time"

	"github.com/23skdu/longbow-shard/internal/gguf"
	"github.com/23skdu/longbow-shard/internal/metrics"
)

// Options configures shard output.
type Options struct {
	// PreserveMetadata re-encodes the source's full general metadata table
	// into every shard. Off by default: shards then carry zero entries.
	PreserveMetadata bool

	Progress ProgressFunc
}

// WriteShard emits one shard file for the planned group: header, metadata
// section, descriptor block with shard-local offsets re-based to this
// file's own data region, then the raw tensor bytes copied from the source.
// A partially written file is left in place on error; the caller decides
// whether to delete it.
func WriteShard(src *gguf.File, g Group, opts Options) (err error) {
	start := time.Now()
	opts.report(Event{Kind: ShardStarted, Shard: g.Index, Path: g.Path})

	// Validate every byte range against the source before creating the
	// output file. An out-of-bounds descriptor is corruption.
	for i := range g.Tensors {
		td := &g.Tensors[i]
		if td.Size > math.MaxUint64-td.Offset || td.Offset+td.Size > uint64(src.Size()) {
			return SourceReadError{
				Tensor: td.Name, Offset: td.Offset, Size: td.Size, Err: io.ErrUnexpectedEOF,
			}
		}
	}

	out, err := os.Create(g.Path)
	if err != nil {
		return OutputWriteError{Path: g.Path, Err: err}
	}
	defer out.Close()

	w := bufio.NewWriter(out)

	if err := writeHeader(w, src, len(g.Tensors), opts); err != nil {
		return OutputWriteError{Path: g.Path, Err: err}
	}

	// Descriptor block: offsets are local to this shard's data region,
	// a running total from zero in group order.
	local := uint64(0)
	for i := range g.Tensors {
		td := &g.Tensors[i]
		if err := writeDescriptor(w, td, local); err != nil {
			return OutputWriteError{Path: g.Path, Err: err}
		}
		local += td.Size
	}

	// Data region: exact byte-for-byte copies, positioned reads against
	// the source in group order.
	for i := range g.Tensors {
		td := &g.Tensors[i]
		n, err := io.Copy(w, src.SectionReader(*td))
		if err != nil {
			return OutputWriteError{Path: g.Path, Err: err}
		}
		if uint64(n) != td.Size {
			return SourceReadError{
				Tensor: td.Name, Offset: td.Offset, Size: td.Size, Err: io.ErrUnexpectedEOF,
			}
		}
		opts.report(Event{
			Kind: TensorCopied, Shard: g.Index, Path: g.Path, Tensor: td.Name, Bytes: td.Size,
		})
	}

	if err := w.Flush(); err != nil {
		return OutputWriteError{Path: g.Path, Err: err}
	}
	if err := out.Close(); err != nil {
		return OutputWriteError{Path: g.Path, Err: err}
	}

	metrics.RecordShard(len(g.Tensors), local, time.Since(start))
	opts.report(Event{Kind: ShardFinished, Shard: g.Index, Path: g.Path, Bytes: local})
	return nil
}

func writeHeader(w io.Writer, src *gguf.File, tensorCount int, opts Options) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(gguf.Magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, src.Version); err != nil {
		return err
	}

	var mdCount uint64
	if opts.PreserveMetadata {
		mdCount = uint64(len(src.Metadata))
	}
	if err := binary.Write(w, binary.LittleEndian, mdCount); err != nil {
		return err
	}
	// Tensor-metadata section is never propagated.
	if err := binary.Write(w, binary.LittleEndian, uint64(0)); err != nil {
		return err
	}

	if opts.PreserveMetadata {
		// Sorted keys keep the output deterministic; the table itself has
		// no order contract.
		for _, key := range slices.Sorted(maps.Keys(src.Metadata)) {
			if err := gguf.WriteString(w, key); err != nil {
				return err
			}
			if err := gguf.WriteValue(w, src.Metadata[key]); err != nil {
				return err
			}
		}
	}

	return binary.Write(w, binary.LittleEndian, uint64(tensorCount))
}

func writeDescriptor(w io.Writer, td *gguf.TensorDescriptor, localOffset uint64) error {
	if err := gguf.WriteString(w, td.Name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(td.Dims))); err != nil {
		return err
	}
	for _, d := range td.Dims {
		if err := binary.Write(w, binary.LittleEndian, d); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(td.Type)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, localOffset)
}
