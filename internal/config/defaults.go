package config

// defaultModels maps each provider to its default generative model.
var defaultModels = map[ProviderType]string{
	ProviderGoogle:    "gemini-2.0-flash",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderOllama:    "llama3",
}

// defaultEmbeddingModels maps each provider to its default embedding model.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderGoogle: "gemini-embedding-001",
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
}

// DefaultModel returns the default generative model for a provider.
func DefaultModel(p ProviderType) string {
	return defaultModels[p]
}

// DefaultEmbeddingModel returns the default embedding model for a provider.
func DefaultEmbeddingModel(p ProviderType) string {
	return defaultEmbeddingModels[p]
}

// Default returns a Config with sensible defaults. Gemini is tried first,
// Claude second, matching the deployment the service was tuned on.
func Default() *Config {
	return &Config{
		Providers: []ProviderConfig{
			{Type: ProviderGoogle, Model: defaultModels[ProviderGoogle]},
			{Type: ProviderAnthropic, Model: defaultModels[ProviderAnthropic]},
		},
		EmbeddingProvider: ProviderGoogle,
		EmbeddingModel:    defaultEmbeddingModels[ProviderGoogle],
		Retrieval: RetrievalConfig{
			TopK:           5,
			SemanticWeight: 0.7,
			LexicalWeight:  0.3,
		},
		Response: ResponseConfig{
			MaxTokens:   300,
			MaxWords:    150,
			MinLength:   20,
			Temperature: 0.8,
		},
		// Gemini free-tier allowance.
		RateLimitPerMinute:     15,
		RequestTimeoutSeconds:  8,
		ContextCacheTTLSeconds: 3600,
		Port:                   8080,
		DataDir:                ".futureself",
	}
}
