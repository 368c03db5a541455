package retrieval

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/future-self-ai/backend/internal/embeddings"
)

const collectionName = "career-knowledge"

// DenseIndex scores chunks against a query by embedding similarity.
// Implementations may hit the network, so queries take a context and can
// fail; callers degrade to lexical-only ranking on error.
type DenseIndex interface {
	// Index rebuilds the index over the given corpus.
	Index(ctx context.Context, chunks []Chunk) error
	// Scores returns a chunk id → similarity map for the query.
	Scores(ctx context.Context, query string) (map[string]float64, error)
	Count() int
}

// ChromemIndex implements DenseIndex on an in-memory chromem-go
// collection.
type ChromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemIndex creates an empty dense index using the given embedder.
func NewChromemIndex(embedder embeddings.Embedder) (*ChromemIndex, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemIndex{db: db, collection: col, embedFunc: ef}, nil
}

// Index drops the collection and re-embeds the corpus. Chunk ids are
// content-derived, so re-indexing unchanged content is harmless.
func (s *ChromemIndex) Index(ctx context.Context, chunks []Chunk) error {
	return s.IndexWithProgress(ctx, chunks, nil)
}

// IndexWithProgress is Index with a per-chunk callback, used by the CLI
// to drive a progress bar while embedding.
func (s *ChromemIndex) IndexWithProgress(ctx context.Context, chunks []Chunk, report func(done int)) error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("reset collection: %w", err)
	}
	col, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.collection = col

	for i, c := range chunks {
		doc := chromem.Document{
			ID:      c.ID,
			Content: c.Content,
			Metadata: map[string]string{
				"type":      string(c.Metadata.Type),
				"career_id": c.Metadata.CareerID,
				"section":   c.Metadata.Section,
			},
		}
		if err := s.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
			return fmt.Errorf("embedding chunk %s: %w", c.ID, err)
		}
		if report != nil {
			report(i + 1)
		}
	}
	return nil
}

// Scores queries the whole collection and returns similarities keyed by
// chunk id. Career filtering happens in the retriever against the chunk
// store, so the query asks for every document; chromem rejects nResults
// larger than the collection.
func (s *ChromemIndex) Scores(ctx context.Context, query string) (map[string]float64, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}

	results, err := s.collection.Query(ctx, query, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.ID] = float64(r.Similarity)
	}
	return scores, nil
}

func (s *ChromemIndex) Count() int {
	return s.collection.Count()
}

// Persist writes the embedded collection to dir, so serve can start
// without re-embedding.
func (s *ChromemIndex) Persist(dir string) error {
	return s.db.ExportToFile(dir+"/chromem.gob.gz", true, "")
}

// Load restores a persisted collection from dir.
func (s *ChromemIndex) Load(dir string) error {
	if err := s.db.ImportFromFile(dir+"/chromem.gob.gz", ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}
