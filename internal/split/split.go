package split

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/23skdu/longbow-shard/internal/gguf"
	"github.com/23skdu/longbow-shard/internal/logger"
	"github.com/23skdu/longbow-shard/internal/metrics"
)

// Run plans and writes all shards for src. Shards are produced strictly one
// at a time; completed shard files are never rolled back, and the shard
// in flight when an error hits is left in place for the caller to judge.
func Run(src *gguf.File, numShards int, outDir string, opts Options) (Plan, error) {
	start := time.Now()

	plan, err := NewPlan(src.Tensors, numShards, outDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, OutputWriteError{Path: outDir, Err: err}
	}

	warnOverlaps(src.Tensors)

	for _, g := range plan {
		if err := WriteShard(src, g, opts); err != nil {
			return nil, fmt.Errorf("shard %d: %w", g.Index, err)
		}
	}

	metrics.RecordSplit(time.Since(start))
	return plan, nil
}

// warnOverlaps flags descriptor byte ranges that alias each other. Aliased
// weight blobs show up in real converted models, so overlap is tolerated;
// it is still worth a warning because it usually means the estimator and
// the true packed layout disagree.
func warnOverlaps(catalog gguf.Catalog) {
	if len(catalog) < 2 {
		return
	}
	byOffset := make([]*gguf.TensorDescriptor, len(catalog))
	for i := range catalog {
		byOffset[i] = &catalog[i]
	}
	sort.Slice(byOffset, func(i, j int) bool {
		return byOffset[i].Offset < byOffset[j].Offset
	})
	for i := 0; i < len(byOffset)-1; i++ {
		curr, next := byOffset[i], byOffset[i+1]
		if curr.Offset+curr.Size > next.Offset {
			logger.Log.Warn("tensor byte ranges overlap",
				"tensor", curr.Name,
				"next", next.Name,
				"end", curr.Offset+curr.Size,
				"next_offset", next.Offset)
		}
	}
}
