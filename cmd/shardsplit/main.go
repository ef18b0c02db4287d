package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/23skdu/longbow-shard/internal/catalog"
	"github.com/23skdu/longbow-shard/internal/config"
	"github.com/23skdu/longbow-shard/internal/gguf"
	"github.com/23skdu/longbow-shard/internal/logger"
	"github.com/23skdu/longbow-shard/internal/metrics"
	"github.com/23skdu/longbow-shard/internal/ollama"
	"github.com/23skdu/longbow-shard/internal/split"
)

var (
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat   = flag.String("log-format", "console", "Log format (console, json)")
	metricsAddr = flag.String("metrics", "", "Address to serve Prometheus metrics (empty = off)")
	preserveMD  = flag.Bool("preserve-metadata", false, "Copy the source metadata table into every shard")
	manifest    = flag.String("manifest", "", "Write an Arrow catalog manifest to this path")
	maxString   = flag.Uint64("max-string", 0, "Override max metadata string bytes")
	maxElems    = flag.Uint64("max-elems", 0, "Override max metadata array elements")
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: shardsplit [flags] <model.gguf|ollama-model> <num_shards> [output_dir]")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	cfg := config.Default()
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat
	cfg.PreserveMetadata = *preserveMD
	cfg.ManifestPath = *manifest
	cfg.MetricsAddr = *metricsAddr
	if *maxString > 0 {
		cfg.MaxStringBytes = *maxString
	}
	if *maxElems > 0 {
		cfg.MaxArrayElems = *maxElems
	}

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}
	cfg.SourcePath = args[0]
	n, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid shard count %q: %v\n", args[1], err)
		os.Exit(1)
	}
	cfg.ShardCount = n
	if len(args) > 2 {
		cfg.OutputDir = args[2]
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log := logger.Log.With("shardsplit")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			log.Info("metrics serving", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				log.Warn("metrics server stopped", "err", err)
			}
		}()
	}

	// A path that doesn't stat may be an Ollama model name.
	if _, err := os.Stat(cfg.SourcePath); err != nil {
		store, serr := ollama.DefaultStore()
		if serr != nil {
			log.Error("source not found", "path", cfg.SourcePath, "err", err)
			os.Exit(1)
		}
		resolved, rerr := store.Resolve(cfg.SourcePath)
		if rerr != nil {
			log.Error("source is neither a file nor a local Ollama model",
				"path", cfg.SourcePath, "err", rerr)
			os.Exit(1)
		}
		log.Info("resolved Ollama model", "model", cfg.SourcePath, "blob", resolved)
		cfg.SourcePath = resolved
	}

	limits := gguf.Limits{MaxStringBytes: cfg.MaxStringBytes, MaxArrayElems: cfg.MaxArrayElems}
	src, err := gguf.OpenWithLimits(cfg.SourcePath, limits)
	if err != nil {
		metrics.RecordParseFailure(parseErrorKind(err))
		log.Error("failed to parse source container", "path", cfg.SourcePath, "err", err)
		os.Exit(1)
	}
	defer src.Close()

	log.Info("parsed source container",
		"path", cfg.SourcePath,
		"version", src.Version,
		"metadata_keys", len(src.Metadata),
		"tensors", len(src.Tensors),
		"data_offset", src.DataOffset,
		"file_size", src.Size())

	opts := split.Options{
		PreserveMetadata: cfg.PreserveMetadata,
		Progress:         logProgress(log),
	}
	plan, err := split.Run(src, cfg.ShardCount, cfg.OutputDir, opts)
	if err != nil {
		log.Error("split failed", "err", err)
		os.Exit(1)
	}

	if cfg.ManifestPath != "" {
		if err := catalog.WriteManifest(cfg.ManifestPath, plan); err != nil {
			log.Error("manifest export failed", "path", cfg.ManifestPath, "err", err)
			os.Exit(1)
		}
		log.Info("wrote catalog manifest", "path", cfg.ManifestPath)
	}

	log.Info("split complete", "shards", len(plan), "output_dir", cfg.OutputDir)
}

func logProgress(log *logger.Logger) split.ProgressFunc {
	return func(e split.Event) {
		switch e.Kind {
		case split.ShardStarted:
			log.Info("writing shard", "shard", e.Shard, "path", e.Path)
		case split.TensorCopied:
			log.Debug("copied tensor", "shard", e.Shard, "tensor", e.Tensor, "bytes", e.Bytes)
		case split.ShardFinished:
			log.Info("shard complete", "shard", e.Shard, "path", e.Path, "bytes", e.Bytes)
		}
	}
}

func parseErrorKind(err error) string {
	switch {
	case errors.As(err, new(gguf.BadMagicError)):
		return "bad_magic"
	case errors.As(err, new(gguf.UnsupportedVersionError)):
		return "unsupported_version"
	case errors.As(err, new(gguf.OversizedFieldError)):
		return "oversized_field"
	case errors.As(err, new(gguf.InvalidEncodingError)):
		return "invalid_encoding"
	case errors.As(err, new(gguf.UnsupportedValueTypeError)):
		return "unsupported_value_type"
	case errors.As(err, new(gguf.UnsupportedArrayElementTypeError)):
		return "unsupported_array_element"
	case errors.As(err, new(gguf.TruncatedInputError)):
		return "truncated_input"
	default:
		return "io"
	}
}
