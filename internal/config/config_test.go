package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("expected top_k 5, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.SemanticWeight != 0.7 || cfg.Retrieval.LexicalWeight != 0.3 {
		t.Errorf("expected 0.7/0.3 weights, got %f/%f",
			cfg.Retrieval.SemanticWeight, cfg.Retrieval.LexicalWeight)
	}
	if cfg.ContextCacheTTLSeconds != 3600 {
		t.Errorf("expected cache TTL 3600, got %d", cfg.ContextCacheTTLSeconds)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".futureself.yml")
	data := []byte(`
port: 9999
rate_limit_per_minute: 4
retrieval:
  top_k: 3
  semantic_weight: 0.5
  lexical_weight: 0.5
providers:
  - type: anthropic
    model: claude-haiku-4-5-20251001
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.RateLimitPerMinute != 4 {
		t.Errorf("expected rate limit 4, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("expected top_k 3, got %d", cfg.Retrieval.TopK)
	}
	if len(cfg.Providers) != 1 || cfg.Providers[0].Type != ProviderAnthropic {
		t.Errorf("expected single anthropic provider, got %+v", cfg.Providers)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FUTURESELF_PORT", "7070")
	t.Setenv("FUTURESELF_RETRIEVAL_TOP_K", "2")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("expected env override port 7070, got %d", cfg.Port)
	}
	if cfg.Retrieval.TopK != 2 {
		t.Errorf("expected env override top_k 2, got %d", cfg.Retrieval.TopK)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no providers", func(c *Config) { c.Providers = nil }},
		{"unknown provider", func(c *Config) { c.Providers[0].Type = "grok" }},
		{"missing model", func(c *Config) { c.Providers[0].Model = "" }},
		{"anthropic embeddings", func(c *Config) { c.EmbeddingProvider = ProviderAnthropic }},
		{"negative top_k", func(c *Config) { c.Retrieval.TopK = -1 }},
		{"zero weights", func(c *Config) { c.Retrieval.SemanticWeight = 0; c.Retrieval.LexicalWeight = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimitPerMinute = -1 }},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".futureself.yml")
	cfg := Default()
	cfg.Port = 1234

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Port != 1234 {
		t.Errorf("expected port 1234 after round trip, got %d", loaded.Port)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderGoogle); got != "GEMINI_API_KEY" {
		t.Errorf("google: got %q", got)
	}
	if got := APIKeyEnvVar(ProviderOllama); got != "" {
		t.Errorf("ollama should need no key, got %q", got)
	}
}
