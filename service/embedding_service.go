package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/behalnihal/rag-chatbot-backend/config"
	"github.com/behalnihal/rag-chatbot-backend/types"
)

// JinaEmbedder calls Jina's OpenAI-compatible embeddings endpoint. The model
// produces 768-dimension vectors; anything else is rejected as a
// configuration error. The client itself does not retry, callers decide the
// retry policy.
type JinaEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

func NewJinaEmbedder(cfg config.EmbeddingConfig) *JinaEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.Endpoint

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = 768
	}

	return &JinaEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: dimension,
	}
}

func (e *JinaEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, wrapEmbeddingError(err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			types.ErrMalformedEmbedding, len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, fmt.Errorf("%w: embedding index %d out of range",
				types.ErrMalformedEmbedding, item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	for i, v := range vectors {
		if len(v) != e.dimension {
			return nil, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(v), e.dimension)
		}
	}
	return vectors, nil
}

func (e *JinaEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func wrapEmbeddingError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return types.NewEmbeddingServiceError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return types.NewEmbeddingServiceError(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return types.NewEmbeddingServiceError(0, err.Error())
}
