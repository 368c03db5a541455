package retrieval

import (
	"context"
	"log"
	"sort"
)

// ScoredChunk is a chunk with its ranking scores attached.
type ScoredChunk struct {
	Chunk
	Score    float64 `json:"score"`
	Semantic float64 `json:"semantic"`
	Lexical  float64 `json:"lexical"`
}

// Retriever ranks chunks with a weighted blend of embedding similarity
// and TF-IDF similarity. The dense index is optional; without one (or
// when an embedding call fails) ranking falls back to lexical scores
// alone.
type Retriever struct {
	store          *Store
	lexical        LexicalIndexer
	dense          DenseIndex
	semanticWeight float64
	lexicalWeight  float64
}

// NewRetriever builds a hybrid retriever. dense may be nil.
func NewRetriever(store *Store, lexical LexicalIndexer, dense DenseIndex, semanticWeight, lexicalWeight float64) *Retriever {
	return &Retriever{
		store:          store,
		lexical:        lexical,
		dense:          dense,
		semanticWeight: semanticWeight,
		lexicalWeight:  lexicalWeight,
	}
}

// Rebuild re-indexes both sides from the current store contents. Call it
// after loading or replacing chunks.
func (r *Retriever) Rebuild(ctx context.Context) error {
	chunks := r.store.All()
	r.lexical.Index(chunks)
	if r.dense != nil {
		if err := r.dense.Index(ctx, chunks); err != nil {
			return err
		}
	}
	return nil
}

// RebuildLexical re-indexes only the lexical side, for when the dense
// collection was restored from disk and re-embedding would be wasted.
func (r *Retriever) RebuildLexical() {
	r.lexical.Index(r.store.All())
}

// Retrieve returns the topK highest-scoring chunks for the query,
// restricted to careerID when it is non-empty. Résumé chunks are private
// to the session that uploaded them: they join the candidate set only
// when sessionID owns them, and never surface in unfiltered retrieval.
// Results are ordered by combined score descending; equal scores keep
// store insertion order, so the same corpus and query always produce the
// same ranking. topK <= 0 returns nil.
func (r *Retriever) Retrieve(ctx context.Context, query, careerID, sessionID string, topK int) []ScoredChunk {
	if topK <= 0 {
		return nil
	}

	var candidates []Chunk
	if careerID != "" {
		candidates = r.store.ByOwner(careerID)
	} else {
		for _, c := range r.store.All() {
			if c.Metadata.Type == ChunkResume {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	if sessionID != "" && sessionID != careerID {
		candidates = append(candidates, r.store.ByOwner(sessionID)...)
	}
	if len(candidates) == 0 {
		return nil
	}

	lexScores := r.lexical.Scores(query)

	var semScores map[string]float64
	if r.dense != nil {
		var err error
		semScores, err = r.dense.Scores(ctx, query)
		if err != nil {
			log.Printf("dense retrieval failed, using lexical scores only: %v", err)
			semScores = nil
		}
	}

	scored := make([]ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		sem := semScores[c.ID]
		lex := lexScores[c.ID]
		scored = append(scored, ScoredChunk{
			Chunk:    c,
			Score:    r.semanticWeight*sem + r.lexicalWeight*lex,
			Semantic: sem,
			Lexical:  lex,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}
