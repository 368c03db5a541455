// Package assembler turns a raw user question into the context bundle
// the prompt builder consumes: career facts, retrieved chunks, question
// classification, and recent conversation turns.
package assembler

import (
	"context"
	"strings"
	"time"

	"github.com/future-self-ai/backend/internal/career"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/retrieval"
)

// DefaultTopK is how many chunks a bundle carries when no explicit
// retrieval depth is configured.
const DefaultTopK = 5

// Bundle is everything the prompt builder needs for one question.
type Bundle struct {
	CareerID       string
	CareerInfo     career.Record
	QuestionType   QuestionType
	Retrieved      []retrieval.ScoredChunk
	RelevantSkills []string
	CareerStage    CareerStage
	Topics         []string
	History        []llm.Message
}

// Assembler builds bundles and memoizes the question-derived parts.
type Assembler struct {
	careers   map[string]career.Record
	retriever *retrieval.Retriever
	topK      int
	cache     *bundleCache
}

// New creates an assembler over the given career records and retriever.
// topK <= 0 falls back to DefaultTopK; ttl <= 0 disables the cache.
func New(careers map[string]career.Record, retriever *retrieval.Retriever, topK int, ttl time.Duration) *Assembler {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Assembler{
		careers:   careers,
		retriever: retriever,
		topK:      topK,
		cache:     newBundleCache(ttl),
	}
}

// Assemble builds the context bundle for a question. sessionID scopes
// retrieval of session-private résumé chunks and may be empty. An
// unknown careerID yields a zero-value CareerInfo and the pipeline
// proceeds; an empty question classifies as general with nothing
// retrieved. History is attached after the cache lookup, so a cache hit
// never carries another conversation's turns.
func (a *Assembler) Assemble(ctx context.Context, careerID, sessionID, question string, history []llm.Message) Bundle {
	if b, ok := a.cache.get(careerID, sessionID, question); ok {
		b.History = history
		return b
	}

	info := a.careers[careerID]
	b := Bundle{
		CareerID:       careerID,
		CareerInfo:     info,
		QuestionType:   ClassifyQuestion(question),
		RelevantSkills: ExtractRelevantSkills(question, info.RequiredSkills),
		CareerStage:    DetermineCareerStage(question),
		Topics:         ExtractTopics(question),
	}
	if strings.TrimSpace(question) != "" && a.retriever != nil {
		b.Retrieved = a.retriever.Retrieve(ctx, question, careerID, sessionID, a.topK)
	}

	a.cache.put(careerID, sessionID, question, b)

	b.History = history
	return b
}

// CacheSize reports how many bundles are currently memoized.
func (a *Assembler) CacheSize() int {
	return a.cache.size()
}
