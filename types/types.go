package types

import (
	"time"
)

// DocumentRecord is one persisted chunk of a source document. A document with
// N chunks produces N rows sharing Filename; Filename is a grouping key, not
// a primary key.
type DocumentRecord struct {
	ID        int64
	Filename  string
	Content   string
	Embedding []float32
	CreatedAt time.Time
}

// SearchResult is a chunk returned by nearest-neighbour search. Similarity is
// the cosine distance reported by the store: lower means more similar.
type SearchResult struct {
	ID         int64   `json:"id"`
	Filename   string  `json:"filename"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// Source identifies a chunk that contributed to an answer.
type Source struct {
	Filename   string  `json:"filename"`
	Similarity float64 `json:"similarity"`
}

// Answer is the result of asking a question over the stored documents.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// DocumentInfo is one row of the grouped document listing.
type DocumentInfo struct {
	Filename    string    `json:"filename"`
	LastAddedAt time.Time `json:"last_added_at"`
	Preview     string    `json:"preview"`
}

// AskResponse is the HTTP representation of an Answer.
type AskResponse struct {
	Answer    string    `json:"answer"`
	Sources   []Source  `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}
