package metrics

import (
	"testing"
	"time"
)

func TestRecordShard(t *testing.T) {
	// Verify the collectors exist and recording does not panic.
	RecordShard(10, 4096, 50*time.Millisecond)
	RecordShard(0, 0, time.Millisecond)
}

func TestRecordSplit(t *testing.T) {
	RecordSplit(200 * time.Millisecond)
}

func TestRecordParseFailure(t *testing.T) {
	RecordParseFailure("bad_magic")
	RecordParseFailure("truncated_input")
	RecordParseFailure("bad_magic") // same label accumulates
}
