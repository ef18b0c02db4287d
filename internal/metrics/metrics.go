package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TensorsSplitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shard_tensors_split_total",
		Help: "Total number of tensors copied into shard files",
	})

	BytesCopiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shard_bytes_copied_total",
		Help: "Total tensor-data bytes copied from source files into shards",
	})

	ShardsWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shard_files_written_total",
		Help: "Total number of shard files completed",
	})

	ShardWriteDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "shard_write_duration_seconds",
		Help: "Duration of individual shard writes",
	})

	SplitDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "shard_split_duration_seconds",
		Help: "Duration of complete split runs",
	})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gguf_parse_failures_total",
		Help: "Total container parse failures by error kind",
	}, []string{"kind"})

	ShardTensorCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shard_tensor_count",
		Help:    "Distribution of tensors per written shard",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 250, 500, 1000},
	})
)

// RecordShard accounts one completed shard file.
func RecordShard(tensors int, bytes uint64, elapsed time.Duration) {
	ShardsWrittenTotal.Inc()
	TensorsSplitTotal.Add(float64(tensors))
	BytesCopiedTotal.Add(float64(bytes))
	ShardTensorCount.Observe(float64(tensors))
	ShardWriteDuration.Observe(elapsed.Seconds())
}

// RecordSplit accounts one complete split run.
func RecordSplit(elapsed time.Duration) {
	SplitDuration.Observe(elapsed.Seconds())
}

// RecordParseFailure accounts one failed container parse by error kind.
func RecordParseFailure(kind string) {
	ParseFailures.WithLabelValues(kind).Inc()
}
