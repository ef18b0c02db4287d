package gguf

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// File is one parsed container. The underlying *os.File stays open,
// read-only, for positioned tensor-data reads; positioned reads are
// independent, so concurrent readers are safe.
type File struct {
	Version    uint32
	Metadata   Metadata
	Tensors    Catalog
	DataOffset uint64

	src     *os.File
	srcSize int64
}

// Open parses path with DefaultLimits.
func Open(path string) (*File, error) {
	return OpenWithLimits(path, DefaultLimits())
}

// OpenWithLimits parses the container header, metadata sections, and tensor
// descriptor block of path. Parsing is strictly sequential with no
// backtracking; any parse error is fatal, since a misaligned cursor makes
// every subsequent field garbage. On success the returned File holds an
// open handle and must be closed by the caller.
func OpenWithLimits(path string, limits Limits) (*File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := src.Stat()
	if err != nil {
		src.Close()
		return nil, err
	}

	f := &File{
		Metadata: make(Metadata),
		src:      src,
		srcSize:  info.Size(),
	}
	if err := f.parse(newDecoder(bufio.NewReader(src), limits)); err != nil {
		src.Close()
		return nil, err
	}
	return f, nil
}

func (f *File) parse(d *decoder) error {
	magic, err := d.u32("magic")
	if err != nil {
		return err
	}
	if magic != Magic {
		return BadMagicError{Magic: magic}
	}

	version, err := d.u32("version")
	if err != nil {
		return err
	}
	if version != Version {
		return UnsupportedVersionError{Version: version}
	}
	f.Version = version

	generalCount, err := d.u64("general metadata count")
	if err != nil {
		return err
	}
	tensorMetaCount, err := d.u64("tensor metadata count")
	if err != nil {
		return err
	}

	// General metadata: keep it. Duplicate keys take the last value.
	for i := uint64(0); i < generalCount; i++ {
		key, err := d.str("metadata key")
		if err != nil {
			return fmt.Errorf("general metadata entry %d: %w", i, err)
		}
		tag, err := d.u32("metadata value type")
		if err != nil {
			return fmt.Errorf("general metadata %q: %w", key, err)
		}
		val, err := d.decodeValue(ValueType(tag))
		if err != nil {
			return fmt.Errorf("general metadata %q: %w", key, err)
		}
		f.Metadata[key] = val
	}

	// Tensor metadata: content unused for splitting, but it must be consumed
	// with the real codec. An approximate skip would leave the cursor inside
	// some field and ruin the descriptor block that follows.
	for i := uint64(0); i < tensorMetaCount; i++ {
		if _, err := d.str("tensor metadata key"); err != nil {
			return fmt.Errorf("tensor metadata entry %d: %w", i, err)
		}
		tag, err := d.u32("tensor metadata value type")
		if err != nil {
			return fmt.Errorf("tensor metadata entry %d: %w", i, err)
		}
		if _, err := d.decodeValue(ValueType(tag)); err != nil {
			return fmt.Errorf("tensor metadata entry %d: %w", i, err)
		}
	}

	tensorCount, err := d.u64("tensor count")
	if err != nil {
		return err
	}
	if tensorCount > d.limits.MaxArrayElems {
		return OversizedFieldError{
			Offset: d.pos, Field: "tensor count", Length: tensorCount, Max: d.limits.MaxArrayElems,
		}
	}

	f.Tensors = make(Catalog, 0, tensorCount)
	for i := uint64(0); i < tensorCount; i++ {
		td, err := d.decodeTensor()
		if err != nil {
			return fmt.Errorf("tensor descriptor %d: %w", i, err)
		}
		f.Tensors = append(f.Tensors, td)
	}

	f.DataOffset = d.pos
	return nil
}

func (d *decoder) decodeTensor() (TensorDescriptor, error) {
	var td TensorDescriptor
	name, err := d.str("tensor name")
	if err != nil {
		return td, err
	}
	rank, err := d.u32("tensor rank")
	if err != nil {
		return td, err
	}
	if uint64(rank) > d.limits.MaxArrayElems {
		return td, OversizedFieldError{
			Offset: d.pos, Field: "tensor rank", Length: uint64(rank), Max: d.limits.MaxArrayElems,
		}
	}
	dims := make([]uint64, rank)
	for j := range dims {
		if dims[j], err = d.u64("tensor dim"); err != nil {
			return td, err
		}
	}
	typ, err := d.u32("tensor type")
	if err != nil {
		return td, err
	}
	offset, err := d.u64("tensor offset")
	if err != nil {
		return td, err
	}

	td = TensorDescriptor{
		Name:   name,
		Dims:   dims,
		Type:   TensorType(typ),
		Offset: offset,
	}
	td.Size = EstimateSize(td.Type, td.Dims)
	return td, nil
}

// SectionReader returns an independent positioned reader over one tensor's
// byte range in the source file.
func (f *File) SectionReader(td TensorDescriptor) *io.SectionReader {
	return io.NewSectionReader(f.src, int64(td.Offset), int64(td.Size))
}

// Size is the source file's total length in bytes.
func (f *File) Size() int64 { return f.srcSize }

// Path is the source file's name as opened.
func (f *File) Path() string { return f.src.Name() }

func (f *File) Close() error { return f.src.Close() }
