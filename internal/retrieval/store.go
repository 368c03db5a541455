package retrieval

import "sync"

// Store holds the chunk corpus. It preserves insertion order (the ranking
// tie-break) and de-duplicates by content id. After loading it is
// effectively read-only and safe for many concurrent readers.
type Store struct {
	mu     sync.RWMutex
	chunks []Chunk
	byID   map[string]int
}

// NewStore creates an empty chunk store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Add appends chunks, skipping ids already present. Returns how many
// chunks were actually inserted.
func (s *Store) Add(chunks ...Chunk) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, c := range chunks {
		if _, ok := s.byID[c.ID]; ok {
			continue
		}
		s.byID[c.ID] = len(s.chunks)
		s.chunks = append(s.chunks, c)
		added++
	}
	return added
}

// ReplaceOwner removes every chunk owned by ownerID and inserts the given
// chunks in their place (chunks are immutable, so updates are
// delete+insert).
func (s *Store) ReplaceOwner(ownerID string, chunks []Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.Metadata.CareerID != ownerID {
			kept = append(kept, c)
		}
	}
	s.chunks = kept

	s.byID = make(map[string]int, len(s.chunks)+len(chunks))
	for i, c := range s.chunks {
		s.byID[c.ID] = i
	}
	for _, c := range chunks {
		if _, ok := s.byID[c.ID]; ok {
			continue
		}
		s.byID[c.ID] = len(s.chunks)
		s.chunks = append(s.chunks, c)
	}
}

// All returns the chunks in insertion order.
func (s *Store) All() []Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// ByOwner returns the chunks owned by the given career or session id,
// in insertion order.
func (s *Store) ByOwner(ownerID string) []Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Chunk
	for _, c := range s.chunks {
		if c.Metadata.CareerID == ownerID {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
