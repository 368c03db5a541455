package config

// ProviderType identifies a generative or embedding backend vendor.
type ProviderType string

const (
	ProviderGoogle    ProviderType = "google"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level futureself configuration, corresponding to
// .futureself.yml. Environment variables prefixed FUTURESELF_ override
// individual keys.
type Config struct {
	// Providers is the ordered list of generative backends. The dispatcher
	// tries them in this order and uses the first valid response.
	Providers []ProviderConfig `yaml:"providers" koanf:"providers"`

	// EmbeddingProvider and EmbeddingModel select the dense-index backend.
	// An empty provider disables the dense index (lexical-only retrieval).
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	Retrieval RetrievalConfig `yaml:"retrieval" koanf:"retrieval"`
	Response  ResponseConfig  `yaml:"response" koanf:"response"`

	// RateLimitPerMinute caps generative requests per trailing minute.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" koanf:"rate_limit_per_minute"`

	// RequestTimeoutSeconds is the hard timeout per backend call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`

	// ContextCacheTTLSeconds bounds how long an assembled context bundle
	// may be served from cache.
	ContextCacheTTLSeconds int `yaml:"context_cache_ttl_seconds" koanf:"context_cache_ttl_seconds"`

	Port        int    `yaml:"port" koanf:"port"`
	DataDir     string `yaml:"data_dir" koanf:"data_dir"`
	CareersFile string `yaml:"careers_file" koanf:"careers_file"`
	AllowAll    bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ProviderConfig names one generative backend and its model.
type ProviderConfig struct {
	Type  ProviderType `yaml:"type" koanf:"type"`
	Model string       `yaml:"model" koanf:"model"`
}

// RetrievalConfig tunes the hybrid retriever.
type RetrievalConfig struct {
	TopK           int     `yaml:"top_k" koanf:"top_k"`
	SemanticWeight float64 `yaml:"semantic_weight" koanf:"semantic_weight"`
	LexicalWeight  float64 `yaml:"lexical_weight" koanf:"lexical_weight"`
}

// ResponseConfig tunes generation and validation.
type ResponseConfig struct {
	MaxTokens   int     `yaml:"max_tokens" koanf:"max_tokens"`
	MaxWords    int     `yaml:"max_words" koanf:"max_words"`
	MinLength   int     `yaml:"min_length" koanf:"min_length"`
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
}
