package service

import "context"

// Embedder converts text into fixed-dimension vectors.
type Embedder interface {
	// EmbedTexts issues a single call carrying the whole batch and returns
	// one vector per input, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	// EmbedQuery is the single-text case.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator produces an answer for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
