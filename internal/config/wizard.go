package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to futureself! Let's configure the backend.")
	fmt.Println()

	cfg := Default()

	// 1. Primary generative provider.
	providerPrompt := promptui.Select{
		Label: "Primary generative provider",
		Items: []string{"google", "anthropic", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	primary := ProviderType(providerStr)
	cfg.Providers = []ProviderConfig{{Type: primary, Model: DefaultModel(primary)}}

	// 2. Optional fallback provider.
	fallbackPrompt := promptui.Select{
		Label: "Fallback generative provider",
		Items: []string{"none", "google", "anthropic", "openai", "ollama"},
	}
	_, fallbackStr, err := fallbackPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fallback selection: %w", err)
	}
	if fallbackStr != "none" && fallbackStr != providerStr {
		secondary := ProviderType(fallbackStr)
		cfg.Providers = append(cfg.Providers, ProviderConfig{Type: secondary, Model: DefaultModel(secondary)})
	}

	// 3. Embedding provider (empty disables the dense index).
	embedPrompt := promptui.Select{
		Label: "Embedding provider (lexical-only if none)",
		Items: []string{"google", "openai", "ollama", "none"},
	}
	_, embedStr, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding selection: %w", err)
	}
	if embedStr == "none" {
		cfg.EmbeddingProvider = ""
		cfg.EmbeddingModel = ""
	} else {
		cfg.EmbeddingProvider = ProviderType(embedStr)
		cfg.EmbeddingModel = DefaultEmbeddingModel(cfg.EmbeddingProvider)
	}

	// 4. Request budget.
	budgetPrompt := promptui.Prompt{
		Label:   "Generative requests per minute",
		Default: strconv.Itoa(cfg.RateLimitPerMinute),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("must be a non-negative integer")
			}
			return nil
		},
	}
	budgetStr, err := budgetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("budget: %w", err)
	}
	cfg.RateLimitPerMinute, _ = strconv.Atoi(budgetStr)

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)

	if envVar := APIKeyEnvVar(primary); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("Remember to set %s before starting the server.\n", envVar)
	}

	return cfg, nil
}
