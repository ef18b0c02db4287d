package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/23skdu/longbow-shard/internal/catalog"
	"github.com/23skdu/longbow-shard/internal/gguf"
	"github.com/23skdu/longbow-shard/internal/split"
)

var (
	showMeta  = flag.Bool("kv", false, "Dump metadata keys and values")
	arrowPath = flag.String("arrow", "", "Export the tensor catalog as an Arrow IPC file")
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shardinfo [flags] <model.gguf>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := gguf.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Printf("File:        %s\n", f.Path())
	fmt.Printf("Version:     %d\n", f.Version)
	fmt.Printf("Metadata:    %d entries\n", len(f.Metadata))
	fmt.Printf("Tensors:     %d\n", len(f.Tensors))
	fmt.Printf("Data offset: %d\n", f.DataOffset)
	fmt.Printf("File size:   %d\n", f.Size())

	if *showMeta {
		keys := make([]string, 0, len(f.Metadata))
		for k := range f.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("\nMetadata:")
		for _, k := range keys {
			v := f.Metadata[k]
			if v.Type == gguf.ValueTypeArray {
				arr := v.Any.([]any)
				fmt.Printf("  %s: %s[%s] (%d elements)\n", k, v.Type, v.Elem, len(arr))
				continue
			}
			fmt.Printf("  %s: %v\n", k, v.Any)
		}
	}

	fmt.Println("\nTensor catalog:")
	for i, td := range f.Tensors {
		fmt.Printf("  %4d  %-40s %-6s dims=%v offset=%d size=%d\n",
			i, td.Name, td.Type, td.Dims, td.Offset, td.Size)
	}

	if *arrowPath != "" {
		// A single-group plan puts the whole catalog in shard 0.
		plan, err := split.NewPlan(f.Tensors, 1, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := catalog.WriteManifest(*arrowPath, plan); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote Arrow catalog to %s\n", *arrowPath)
	}
}
