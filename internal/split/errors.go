package split

import "fmt"

type InvalidShardCountError struct{ Count int }

func (e InvalidShardCountError) Error() string {
	return fmt.Sprintf("invalid shard count: %d (must be >= 1)", e.Count)
}

// SourceReadError means a tensor's byte range could not be read in full
// from the source file: the range runs past EOF or the read came up short.
type SourceReadError struct {
	Tensor string
	Offset uint64
	Size   uint64
	Err    error
}

func (e SourceReadError) Error() string {
	return fmt.Sprintf("source read failed for tensor %q (offset %d, %d bytes): %v",
		e.Tensor, e.Offset, e.Size, e.Err)
}

func (e SourceReadError) Unwrap() error { return e.Err }

type OutputWriteError struct {
	Path string
	Err  error
}

func (e OutputWriteError) Error() string {
	return fmt.Sprintf("shard write failed for %s: %v", e.Path, e.Err)
}

func (e OutputWriteError) Unwrap() error { return e.Err }
