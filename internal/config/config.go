package config

import "fmt"

// Config describes one split job.
type Config struct {
	SourcePath string
	ShardCount int
	OutputDir  string

	// PreserveMetadata copies the full general metadata table into every
	// shard instead of emitting zero entries.
	PreserveMetadata bool

	// ManifestPath, when set, is where the Arrow catalog manifest goes.
	ManifestPath string

	// Parse bounds for corrupt or adversarial length fields.
	MaxStringBytes uint64
	MaxArrayElems  uint64

	LogLevel  string
	LogFormat string

	// MetricsAddr serves Prometheus metrics when non-empty.
	MetricsAddr string
}

func Default() Config {
	return Config{
		OutputDir:      "shards",
		MaxStringBytes: 1 << 20,
		MaxArrayElems:  1_000_000,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if c.ShardCount < 1 {
		return fmt.Errorf("invalid shard_count: %d (must be >= 1)", c.ShardCount)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir is required")
	}
	if c.MaxStringBytes == 0 {
		return fmt.Errorf("invalid max_string_bytes: 0 (must be positive)")
	}
	if c.MaxArrayElems == 0 {
		return fmt.Errorf("invalid max_array_elems: 0 (must be positive)")
	}
	return nil
}
