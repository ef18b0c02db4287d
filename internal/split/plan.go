package split

import (
	"fmt"
	"path/filepath"

	"github.com/23skdu/longbow-shard/internal/gguf"
)

// Group is one planned shard: a contiguous sub-slice of the source catalog
// plus the output path it will be written to.
type Group struct {
	Index   int
	Path    string
	Tensors gguf.Catalog
}

// TotalBytes sums the estimated sizes of the group's tensors.
func (g Group) TotalBytes() uint64 {
	var n uint64
	for i := range g.Tensors {
		n += g.Tensors[i].Size
	}
	return n
}

// Plan partitions a catalog into shard groups. Groups are disjoint and
// their concatenation in order is exactly the catalog.
type Plan []Group

// NewPlan assigns catalog tensors to numShards groups in catalog order,
// no interleaving: total/numShards per shard, with the first total%numShards
// shards taking one extra. When numShards exceeds the catalog size the
// trailing groups are empty; they are still written as valid shard files.
func NewPlan(catalog gguf.Catalog, numShards int, outDir string) (Plan, error) {
	if numShards < 1 {
		return nil, InvalidShardCountError{Count: numShards}
	}

	base := len(catalog) / numShards
	extra := len(catalog) % numShards

	plan := make(Plan, 0, numShards)
	next := 0
	for i := 0; i < numShards; i++ {
		count := base
		if i < extra {
			count++
		}
		plan = append(plan, Group{
			Index:   i,
			Path:    filepath.Join(outDir, fmt.Sprintf("shard-%d.gguf", i)),
			Tensors: catalog[next : next+count],
		})
		next += count
	}
	return plan, nil
}
