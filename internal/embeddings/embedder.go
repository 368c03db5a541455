package embeddings

import (
	"context"
	"fmt"
	"os"

	"github.com/future-self-ai/backend/internal/config"
)

// Embedder generates dense vector representations of text. An unavailable
// embedder is never fatal to the pipeline: retrieval degrades to
// lexical-only scoring.
type Embedder interface {
	// Encode embeds a single text. A nil or empty vector signals failure.
	Encode(ctx context.Context, text string) ([]float32, error)

	// Name returns the identifier of the embedding model.
	Name() string
}

// New creates the configured embedder, or (nil, nil) when embeddings are
// disabled. A missing API key is reported as an error so the caller can
// log it and continue lexical-only.
func New(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "":
		return nil, nil

	case config.ProviderGoogle:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
		}
		return NewGoogleEmbedder(apiKey, cfg.EmbeddingModel), nil

	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil

	case config.ProviderOllama:
		return NewOllamaEmbedder(os.Getenv("OLLAMA_HOST"), cfg.EmbeddingModel), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.EmbeddingProvider)
	}
}
