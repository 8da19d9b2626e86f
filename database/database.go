package database

import (
	"context"

	"github.com/behalnihal/rag-chatbot-backend/types"
)

// Point is one indexed entry: an explicit id, its embedding vector and the
// payload returned at retrieval time. Points are written once and never
// mutated; identical ids overwrite rather than duplicate.
type Point struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// Payload carries a chunk's text and its article provenance.
type Payload struct {
	Text         string `json:"text"`
	ArticleTitle string `json:"article_title"`
	ArticleURL   string `json:"article_url"`
}

// SearchResult is one nearest neighbour with its payload and cosine distance.
type SearchResult struct {
	Payload  Payload
	Distance float32
}

// VectorIndex defines the vector database operations used by ingestion and
// chat. The collection name and vector dimension are bound at construction.
type VectorIndex interface {
	// EnsureCollection checks existence by name and creates the collection
	// only if absent. Idempotent.
	EnsureCollection(ctx context.Context) error
	// UpsertPoints writes points in batches and returns once every batch has
	// been acknowledged by the server. A batch that keeps failing aborts the
	// remaining batches.
	UpsertPoints(ctx context.Context, points []Point) error
	// Search returns up to topK nearest points with payloads. An empty
	// collection yields an empty result, not an error.
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)
	// DropCollection deletes the collection and everything in it.
	DropCollection(ctx context.Context) error
}

// SessionStore is an append-only ordered transcript per session key.
type SessionStore interface {
	Append(ctx context.Context, sessionID string, messages ...types.Message) error
	ReadAll(ctx context.Context, sessionID string) ([]types.Message, error)
	Clear(ctx context.Context, sessionID string) error
}
