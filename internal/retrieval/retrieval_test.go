package retrieval

import (
	"context"
	"errors"
	"testing"
)

func chunkFixture(content, careerID string, typ ChunkType) Chunk {
	return NewChunk(content, Metadata{Type: typ, CareerID: careerID, Section: string(typ)})
}

func fixtureCorpus() []Chunk {
	return []Chunk{
		chunkFixture("Salary for a Software Engineer: entry level around $75000 per year.", "software_engineer", ChunkSalary),
		chunkFixture("A Software Engineer works daily with tools like Git, Docker, Kubernetes.", "software_engineer", ChunkTools),
		chunkFixture("Core skills for a Data Scientist: Python, Statistics, Machine Learning.", "data_scientist", ChunkSkills),
		chunkFixture("Salary for a Data Scientist: entry level around $85000 per year.", "data_scientist", ChunkSalary),
	}
}

// fakeDense is a DenseIndex with canned scores, so tests never embed.
type fakeDense struct {
	scores map[string]float64
	err    error
	calls  int
}

func (f *fakeDense) Index(ctx context.Context, chunks []Chunk) error { return nil }

func (f *fakeDense) Scores(ctx context.Context, query string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func (f *fakeDense) Count() int { return len(f.scores) }

func newTestRetriever(t *testing.T, dense DenseIndex) (*Retriever, *Store) {
	t.Helper()
	store := NewStore()
	store.Add(fixtureCorpus()...)
	r := NewRetriever(store, NewTFIDF(), dense, 0.7, 0.3)
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return r, store
}

func TestStoreAddIsIdempotent(t *testing.T) {
	store := NewStore()
	corpus := fixtureCorpus()

	if added := store.Add(corpus...); added != len(corpus) {
		t.Fatalf("first add inserted %d, want %d", added, len(corpus))
	}
	if added := store.Add(corpus...); added != 0 {
		t.Errorf("second add inserted %d, want 0", added)
	}
	if store.Len() != len(corpus) {
		t.Errorf("store has %d chunks, want %d", store.Len(), len(corpus))
	}
}

func TestStoreReplaceOwner(t *testing.T) {
	store := NewStore()
	store.Add(fixtureCorpus()...)

	updated := chunkFixture("Salary for a Software Engineer: entry level around $80000 per year.", "software_engineer", ChunkSalary)
	store.ReplaceOwner("software_engineer", []Chunk{updated})

	got := store.ByOwner("software_engineer")
	if len(got) != 1 {
		t.Fatalf("expected 1 chunk after replace, got %d", len(got))
	}
	if got[0].ID != updated.ID {
		t.Errorf("expected replaced chunk, got %s", got[0].ID)
	}
	if len(store.ByOwner("data_scientist")) != 2 {
		t.Errorf("replace touched other owners")
	}
}

func TestTFIDFRanksOverlappingChunkHigher(t *testing.T) {
	idx := NewTFIDF()
	corpus := fixtureCorpus()
	idx.Index(corpus)

	scores := idx.Scores("how much salary will I earn")

	salary := scores[corpus[0].ID]
	tools := scores[corpus[1].ID]
	if salary <= tools {
		t.Errorf("salary chunk scored %f, tools chunk %f; want salary higher", salary, tools)
	}
}

func TestTFIDFEmptyQuery(t *testing.T) {
	idx := NewTFIDF()
	idx.Index(fixtureCorpus())
	if scores := idx.Scores("   "); len(scores) != 0 {
		t.Errorf("expected no scores for blank query, got %d", len(scores))
	}
}

func TestRetrieveIsDeterministic(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	first := r.Retrieve(context.Background(), "what salary can I expect", "", "", 4)
	second := r.Retrieve(context.Background(), "what salary can I expect", "", "", 4)

	if len(first) != len(second) {
		t.Fatalf("result count differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("position %d differs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestRetrieveRespectsTopK(t *testing.T) {
	r, store := newTestRetriever(t, nil)

	if got := r.Retrieve(context.Background(), "salary", "", "", 2); len(got) != 2 {
		t.Errorf("topK=2 returned %d results", len(got))
	}
	if got := r.Retrieve(context.Background(), "salary", "", "", 0); got != nil {
		t.Errorf("topK=0 returned %d results, want none", len(got))
	}
	if got := r.Retrieve(context.Background(), "salary", "", "", 100); len(got) != store.Len() {
		t.Errorf("topK beyond corpus returned %d results, want %d", len(got), store.Len())
	}
}

func TestRetrieveFiltersByCareer(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	results := r.Retrieve(context.Background(), "salary", "data_scientist", "", 10)
	if len(results) == 0 {
		t.Fatal("expected results for data_scientist")
	}
	for _, res := range results {
		if res.Metadata.CareerID != "data_scientist" {
			t.Errorf("result %s belongs to %s", res.ID, res.Metadata.CareerID)
		}
	}
}

func TestRetrieveBlendsSemanticAndLexical(t *testing.T) {
	corpus := fixtureCorpus()
	// The dense side strongly prefers the tools chunk; with weight 0.7 it
	// should outrank the lexically-matching salary chunk.
	dense := &fakeDense{scores: map[string]float64{corpus[1].ID: 1.0}}
	r, _ := newTestRetriever(t, dense)

	results := r.Retrieve(context.Background(), "salary", "software_engineer", "", 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != corpus[1].ID {
		t.Errorf("expected semantically-preferred chunk first, got %s", results[0].ID)
	}
	if results[0].Semantic != 1.0 {
		t.Errorf("semantic score = %f, want 1.0", results[0].Semantic)
	}
	if results[1].Lexical == 0 {
		t.Error("expected lexical score on salary chunk")
	}
}

func TestRetrieveDegradesWhenDenseFails(t *testing.T) {
	dense := &fakeDense{err: errors.New("embedding backend down")}
	r, _ := newTestRetriever(t, dense)

	results := r.Retrieve(context.Background(), "salary expectations", "", "", 4)
	if len(results) == 0 {
		t.Fatal("expected lexical-only results when dense scoring fails")
	}
	if dense.calls == 0 {
		t.Error("dense index was never queried")
	}
	for _, res := range results {
		if res.Semantic != 0 {
			t.Errorf("expected zero semantic score, got %f", res.Semantic)
		}
	}
}

func TestRetrieveTieBreaksByInsertionOrder(t *testing.T) {
	store := NewStore()
	a := chunkFixture("alpha beta gamma", "c1", ChunkBasicInfo)
	b := chunkFixture("delta epsilon zeta", "c1", ChunkBasicInfo)
	store.Add(a, b)
	r := NewRetriever(store, NewTFIDF(), nil, 0.7, 0.3)
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Query matches neither chunk, so every score is zero.
	results := r.Retrieve(context.Background(), "unrelated terms", "", "", 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != a.ID || results[1].ID != b.ID {
		t.Errorf("tie-break lost insertion order: got %s, %s", results[0].ID, results[1].ID)
	}
}

func TestRetrieveScopesResumeChunksToSession(t *testing.T) {
	store := NewStore()
	store.Add(fixtureCorpus()...)
	mine := chunkFixture("Skills from experience: Go, Python, Docker. Salary history available on request.", "session-a", ChunkResume)
	store.Add(mine)
	r := NewRetriever(store, NewTFIDF(), nil, 0.7, 0.3)
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatal(err)
	}

	containsChunk := func(results []ScoredChunk, id string) bool {
		for _, res := range results {
			if res.ID == id {
				return true
			}
		}
		return false
	}

	// The owning session sees its own resume chunk alongside career facts.
	results := r.Retrieve(context.Background(), "salary and skills", "software_engineer", "session-a", 10)
	if !containsChunk(results, mine.ID) {
		t.Error("owning session's resume chunk missing from career-filtered retrieval")
	}
	for _, res := range results {
		owner := res.Metadata.CareerID
		if owner != "software_engineer" && owner != "session-a" {
			t.Errorf("result %s owned by %s, want career or session chunks only", res.ID, owner)
		}
	}

	// Nobody else does, filtered or not.
	if results := r.Retrieve(context.Background(), "salary and skills", "software_engineer", "", 10); containsChunk(results, mine.ID) {
		t.Error("resume chunk leaked into sessionless retrieval")
	}
	if results := r.Retrieve(context.Background(), "salary and skills", "", "", 10); containsChunk(results, mine.ID) {
		t.Error("resume chunk leaked into unfiltered retrieval")
	}
	if results := r.Retrieve(context.Background(), "salary and skills", "", "session-b", 10); containsChunk(results, mine.ID) {
		t.Error("resume chunk leaked into another session's retrieval")
	}
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	store := NewStore()
	r := NewRetriever(store, NewTFIDF(), nil, 0.7, 0.3)
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := r.Retrieve(context.Background(), "anything", "", "", 5); got != nil {
		t.Errorf("expected no results from empty corpus, got %d", len(got))
	}
}
