package retrieval

import (
	"crypto/sha256"
	"encoding/hex"
)

// ChunkType classifies what kind of fact a chunk carries.
type ChunkType string

const (
	ChunkBasicInfo       ChunkType = "basic_info"
	ChunkSkills          ChunkType = "skills"
	ChunkPreferredSkills ChunkType = "preferred_skills"
	ChunkSalary          ChunkType = "salary"
	ChunkProgression     ChunkType = "progression"
	ChunkTools           ChunkType = "tools"
	ChunkLanguages       ChunkType = "languages"
	ChunkResume          ChunkType = "resume"
)

// Metadata tags a chunk with its type and owner. CareerID is a career
// identifier for knowledge-base chunks, or a session id for
// resume-derived chunks.
type Metadata struct {
	Type     ChunkType `json:"type"`
	CareerID string    `json:"career_id"`
	Section  string    `json:"section"`
}

// Chunk is one independently retrievable fact. Chunks are immutable once
// created; updates are modeled as delete+insert.
type Chunk struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// ChunkID derives a stable id from chunk text, so identical content
// always maps to the same chunk and re-loading is idempotent.
func ChunkID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:12])
}

// NewChunk builds a chunk with its content-derived id.
func NewChunk(content string, md Metadata) Chunk {
	return Chunk{
		ID:       ChunkID(content),
		Content:  content,
		Metadata: md,
	}
}
