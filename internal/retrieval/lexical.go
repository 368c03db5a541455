package retrieval

import (
	"math"
	"strings"
	"sync"
	"unicode"
)

// LexicalIndexer scores chunks against a query by term overlap. It needs
// no network access and works even when no embedding provider is
// configured.
type LexicalIndexer interface {
	// Index rebuilds the index over the given corpus.
	Index(chunks []Chunk)
	// Scores returns a chunk id → similarity map in [0, 1]. Chunks with
	// no term overlap may be absent from the map.
	Scores(query string) map[string]float64
}

// TFIDF is an in-memory TF-IDF index with cosine similarity. Index is a
// full rebuild; the corpus is small enough that incremental updates are
// not worth the bookkeeping.
type TFIDF struct {
	mu      sync.RWMutex
	idf     map[string]float64
	vectors map[string]map[string]float64
}

// NewTFIDF creates an empty TF-IDF index.
func NewTFIDF() *TFIDF {
	return &TFIDF{
		idf:     make(map[string]float64),
		vectors: make(map[string]map[string]float64),
	}
}

func (t *TFIDF) Index(chunks []Chunk) {
	docs := make([]map[string]int, len(chunks))
	df := make(map[string]int)

	for i, c := range chunks {
		counts := make(map[string]int)
		for _, tok := range tokenize(c.Content) {
			counts[tok]++
		}
		docs[i] = counts
		for term := range counts {
			df[term]++
		}
	}

	n := float64(len(chunks))
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make(map[string]map[string]float64, len(chunks))
	for i, c := range chunks {
		total := 0
		for _, cnt := range docs[i] {
			total += cnt
		}
		if total == 0 {
			continue
		}
		vec := make(map[string]float64, len(docs[i]))
		for term, cnt := range docs[i] {
			vec[term] = float64(cnt) / float64(total) * idf[term]
		}
		vectors[c.ID] = vec
	}

	t.mu.Lock()
	t.idf = idf
	t.vectors = vectors
	t.mu.Unlock()
}

func (t *TFIDF) Scores(query string) map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[string]int)
	total := 0
	for _, tok := range tokenize(query) {
		counts[tok]++
		total++
	}
	if total == 0 {
		return nil
	}

	qvec := make(map[string]float64, len(counts))
	for term, cnt := range counts {
		if idf, ok := t.idf[term]; ok {
			qvec[term] = float64(cnt) / float64(total) * idf
		}
	}
	if len(qvec) == 0 {
		return nil
	}

	scores := make(map[string]float64, len(t.vectors))
	for id, dvec := range t.vectors {
		if sim := cosine(qvec, dvec); sim > 0 {
			scores[id] = sim
		}
	}
	return scores
}

// cosine computes cosine similarity between two sparse vectors. It
// iterates the smaller vector, which for queries is almost always qvec.
func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (norm(a) * norm(b))
}

func norm(v map[string]float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	toks := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			toks = append(toks, f)
		}
	}
	return toks
}
