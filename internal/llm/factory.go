package llm

import (
	"fmt"
	"os"

	"github.com/future-self-ai/backend/internal/config"
)

// NewProvider creates a provider from its configuration, reading API keys
// from the conventional environment variables.
func NewProvider(pc config.ProviderConfig) (Provider, error) {
	switch pc.Type {
	case config.ProviderGoogle:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
		}
		return NewGoogleProvider(apiKey, pc.Model), nil

	case config.ProviderAnthropic:
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		return NewAnthropicProvider(apiKey, pc.Model), nil

	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, pc.Model), nil

	case config.ProviderOllama:
		return NewOllamaProvider(os.Getenv("OLLAMA_HOST"), pc.Model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", pc.Type)
	}
}

// NewProviders creates all configured providers, preserving order. A
// provider whose key is missing is skipped, not fatal: the pipeline
// degrades to the remaining providers or to the fallback responder.
func NewProviders(pcs []config.ProviderConfig) ([]Provider, []error) {
	var providers []Provider
	var errs []error
	for _, pc := range pcs {
		p, err := NewProvider(pc)
		if err != nil {
			errs = append(errs, fmt.Errorf("provider %s: %w", pc.Type, err))
			continue
		}
		providers = append(providers, p)
	}
	return providers, errs
}
