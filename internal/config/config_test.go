package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.OutputDir != "shards" {
		t.Errorf("expected OutputDir shards, got %q", cfg.OutputDir)
	}
	if cfg.MaxStringBytes != 1<<20 {
		t.Errorf("expected MaxStringBytes 1MiB, got %d", cfg.MaxStringBytes)
	}
	if cfg.MaxArrayElems != 1_000_000 {
		t.Errorf("expected MaxArrayElems 1M, got %d", cfg.MaxArrayElems)
	}
	if cfg.PreserveMetadata {
		t.Error("expected PreserveMetadata false by default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.SourcePath = "model.gguf"
	valid.ShardCount = 4

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing source", func(c *Config) { c.SourcePath = "" }, true},
		{"zero shards", func(c *Config) { c.ShardCount = 0 }, true},
		{"negative shards", func(c *Config) { c.ShardCount = -2 }, true},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"zero string bound", func(c *Config) { c.MaxStringBytes = 0 }, true},
		{"zero array bound", func(c *Config) { c.MaxArrayElems = 0 }, true},
		{"single shard", func(c *Config) { c.ShardCount = 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
