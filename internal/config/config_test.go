package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:      HTTPConfig{Port: 8080},
		Database:  DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{Model: "test-model", Dimensions: 1024},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("write timeout = %d, want 120", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Retrieval.VectorWeight != 0.7 || cfg.Retrieval.TopK != 5 || cfg.Retrieval.MaxContextTokens != 3000 {
		t.Errorf("retrieval defaults = %+v", cfg.Retrieval)
	}
	if cfg.Chunker.ChunkSize != 500 || cfg.Chunker.Overlap != 100 || cfg.Chunker.MaxChunkSize != 1000 {
		t.Errorf("chunker defaults = %+v", cfg.Chunker)
	}
	if cfg.Statute.MappingsDir != "configs" {
		t.Errorf("mappings dir = %q", cfg.Statute.MappingsDir)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.VectorWeight = 0.5
	cfg.Chunker.ChunkSize = 300
	cfg.ApplyDefaults()

	if cfg.Retrieval.VectorWeight != 0.5 {
		t.Error("explicit vector weight overwritten")
	}
	if cfg.Chunker.ChunkSize != 300 {
		t.Error("explicit chunk size overwritten")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"no addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"no model", func(c *Config) { c.Embedding.Model = "" }, "embedding.model"},
		{"bad dims", func(c *Config) { c.Embedding.Dimensions = 0 }, "embedding.dimensions"},
		{"weight over 1", func(c *Config) { c.Retrieval.VectorWeight = 1.5 }, "vector_weight"},
		{"overlap too big", func(c *Config) { c.Chunker.Overlap = 500 }, "chunker.overlap"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}

	cfg := validConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SATARK_TEST_ADDR", "redis:6379")

	got := string(expandEnvVars([]byte("addr: ${SATARK_TEST_ADDR}")))
	if got != "addr: redis:6379" {
		t.Errorf("expansion = %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	got := string(expandEnvVars([]byte("addr: ${SATARK_UNSET_VAR:-localhost:6379}")))
	if got != "addr: localhost:6379" {
		t.Errorf("default expansion = %q", got)
	}

	t.Setenv("SATARK_SET_VAR", "override")
	got = string(expandEnvVars([]byte("v: ${SATARK_SET_VAR:-fallback}")))
	if got != "v: override" {
		t.Errorf("set variable must win over default, got %q", got)
	}
}

func TestExpandEnvVars_UnsetWithoutDefault(t *testing.T) {
	got := string(expandEnvVars([]byte("v: ${SATARK_MISSING_VAR}")))
	if got != "v: " {
		t.Errorf("unset variable must expand to empty, got %q", got)
	}
}
