package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/future-self-ai/backend/internal/assembler"
	"github.com/future-self-ai/backend/internal/career"
	"github.com/future-self-ai/backend/internal/config"
	"github.com/future-self-ai/backend/internal/embeddings"
	"github.com/future-self-ai/backend/internal/engine"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/retrieval"
)

// loadCareers returns the configured career records: the careers file
// when set, the built-in catalog otherwise.
func loadCareers(cfg *config.Config) (map[string]career.Record, error) {
	if cfg.CareersFile == "" {
		return career.BuiltIn(), nil
	}
	return career.LoadFile(cfg.CareersFile)
}

// buildRetrieval loads the career knowledge base into a store and
// builds both indexes. A missing or misconfigured embedder degrades to
// lexical-only retrieval; loadPersisted restores a previously embedded
// collection from the data dir instead of re-embedding.
func buildRetrieval(ctx context.Context, cfg *config.Config, careers map[string]career.Record, loadPersisted bool) (*retrieval.Store, *retrieval.Retriever, error) {
	store := retrieval.NewStore()
	for _, id := range career.IDs(careers) {
		store.Add(career.Chunks(id, careers[id])...)
	}

	var dense retrieval.DenseIndex
	restored := false
	embedder, err := embeddings.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: embeddings unavailable (%v); retrieval is lexical-only\n", err)
	} else if embedder != nil {
		idx, err := retrieval.NewChromemIndex(embedder)
		if err != nil {
			return nil, nil, fmt.Errorf("creating dense index: %w", err)
		}
		if loadPersisted {
			if err := idx.Load(cfg.DataDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: no persisted index in %s (%v); run `futureself index`\n", cfg.DataDir, err)
			} else {
				restored = true
			}
		}
		dense = idx
	}

	retriever := retrieval.NewRetriever(store, retrieval.NewTFIDF(), dense,
		cfg.Retrieval.SemanticWeight, cfg.Retrieval.LexicalWeight)

	if restored {
		// The dense collection came from disk; re-embedding it would be
		// wasted work and API spend.
		retriever.RebuildLexical()
		return store, retriever, nil
	}
	if err := retriever.Rebuild(ctx); err != nil {
		return nil, nil, fmt.Errorf("building indexes: %w", err)
	}
	return store, retriever, nil
}

// buildEngine wires the answer engine from config.
func buildEngine(cfg *config.Config, careers map[string]career.Record, retriever *retrieval.Retriever) *engine.Engine {
	providers, errs := llm.NewProviders(cfg.Providers)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(providers) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no generative backend available; all responses will use fallback templates")
	}

	dispatcher := engine.NewDispatcher(providers, cfg.RateLimitPerMinute,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	asm := assembler.New(careers, retriever, cfg.Retrieval.TopK,
		time.Duration(cfg.ContextCacheTTLSeconds)*time.Second)

	return engine.New(asm, dispatcher, cfg.Response)
}
