package types

import (
	"errors"
	"fmt"
)

// Sentinel errors distinguishing bad caller input from downstream failures.
// The HTTP layer maps ErrInvalidRequest to a 4xx and everything else to a
// generic 5xx so provider error bodies never leak to clients.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrMalformedEmbedding = errors.New("embedding response malformed")
	ErrRetrieval          = errors.New("retrieval failed")
	ErrGeneration         = errors.New("answer generation failed")
	ErrPersistence        = errors.New("conversation persistence failed")
	ErrIndexProvision     = errors.New("vector collection provisioning failed")
)

// maxErrorBody bounds how much of a provider response body is kept for
// diagnostics.
const maxErrorBody = 256

// EmbeddingServiceError is returned when the embedding provider answers with
// a non-2xx status or the transport fails. Body is truncated.
type EmbeddingServiceError struct {
	StatusCode int
	Body       string
}

func NewEmbeddingServiceError(statusCode int, body string) *EmbeddingServiceError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return &EmbeddingServiceError{StatusCode: statusCode, Body: body}
}

func (e *EmbeddingServiceError) Error() string {
	return fmt.Sprintf("embedding service error: status %d: %s", e.StatusCode, e.Body)
}
