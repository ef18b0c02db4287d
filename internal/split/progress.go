package split

// EventKind classifies a progress event.
type EventKind int

const (
	ShardStarted EventKind = iota
	TensorCopied
	ShardFinished
)

func (k EventKind) String() string {
	switch k {
	case ShardStarted:
		return "shard_started"
	case TensorCopied:
		return "tensor_copied"
	case ShardFinished:
		return "shard_finished"
	default:
		return "unknown"
	}
}

// Event is one unit of split progress. The core never prints; callers
// decide where events go (CLI log, test recorder, nothing).
type Event struct {
	Kind   EventKind
	Shard  int
	Path   string
	Tensor string // set for TensorCopied
	Bytes  uint64 // tensor bytes for TensorCopied, shard total for ShardFinished
}

// ProgressFunc receives events during a split run. A nil ProgressFunc
// disables reporting.
type ProgressFunc func(Event)

func (o Options) report(e Event) {
	if o.Progress != nil {
		o.Progress(e)
	}
}
