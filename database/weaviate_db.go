package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"

	"github.com/behalnihal/rag-chatbot-backend/config"
	"github.com/behalnihal/rag-chatbot-backend/types"
	"github.com/behalnihal/rag-chatbot-backend/utils"
)

const (
	upsertMaxAttempts = 3
	upsertBackoffStep = 500 * time.Millisecond
)

// WeaviateStore implements VectorIndex on a single Weaviate class with
// explicit vectors (vectorizer "none") and cosine distance. Weaviate does not
// pin a class dimension server side, so vectors are validated against the
// configured dimension before every write.
type WeaviateStore struct {
	client     *weaviate.Client
	collection string
	dimension  int
	batchSize  int
	log        *zap.SugaredLogger
}

func NewWeaviateStore(cfg config.VectorStoreConfig, dimension, batchSize int, log *zap.SugaredLogger) (*WeaviateStore, error) {
	var scheme string
	if strings.HasPrefix(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")

	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	if dimension <= 0 {
		return nil, fmt.Errorf("invalid vector dimension %d", dimension)
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	return &WeaviateStore{
		client:     client,
		collection: cfg.Collection,
		dimension:  dimension,
		batchSize:  batchSize,
		log:        log.With("service", "WeaviateStore"),
	}, nil
}

func (s *WeaviateStore) classObject() *models.Class {
	return &models.Class{
		Class: s.collection,
		Properties: []*models.Property{
			{Name: "text", DataType: []string{"text"}},
			{Name: "article_title", DataType: []string{"text"}},
			{Name: "article_url", DataType: []string{"text"}},
		},
		Vectorizer:        "none",
		VectorIndexType:   "hnsw",
		VectorIndexConfig: map[string]interface{}{"distance": "cosine"},
	}
}

func (s *WeaviateStore) EnsureCollection(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to get schema: %v", types.ErrIndexProvision, err)
	}

	for _, class := range schema.Classes {
		if class.Class == s.collection {
			return nil
		}
	}

	err = s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to create class %s: %v", types.ErrIndexProvision, s.collection, err)
	}
	s.log.Infow("created collection", "collection", s.collection, "dimension", s.dimension)
	return nil
}

func (s *WeaviateStore) DropCollection(ctx context.Context) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(s.collection).Do(ctx); err != nil {
		return fmt.Errorf("failed to delete class %s: %w", s.collection, err)
	}
	return nil
}

func (s *WeaviateStore) UpsertPoints(ctx context.Context, points []Point) error {
	for i, p := range points {
		if len(p.Vector) != s.dimension {
			return fmt.Errorf("point %d: vector dimension %d, want %d", i, len(p.Vector), s.dimension)
		}
	}

	total := len(points)
	for start := 0; start < total; start += s.batchSize {
		end := start + s.batchSize
		if end > total {
			end = total
		}
		batch := points[start:end]

		err := utils.Retry(ctx, upsertMaxAttempts, utils.LinearBackoff(upsertBackoffStep), func() error {
			return s.upsertBatch(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("failed to upsert batch %d-%d: %w", start, end, err)
		}
		s.log.Infow("upserted batch", "from", start, "to", end, "total", total)
	}
	return nil
}

// upsertBatch issues one batched write and returns only after the server has
// acknowledged every object in it.
func (s *WeaviateStore) upsertBatch(ctx context.Context, batch []Point) error {
	batcher := s.client.Batch().ObjectsBatcher()
	for _, p := range batch {
		batcher = batcher.WithObjects(&models.Object{
			ID:    strfmt.UUID(p.ID),
			Class: s.collection,
			Properties: map[string]interface{}{
				"text":          p.Payload.Text,
				"article_title": p.Payload.ArticleTitle,
				"article_url":   p.Payload.ArticleURL,
			},
			Vector: p.Vector,
		})
	}

	resp, err := batcher.Do(ctx)
	if err != nil {
		return err
	}
	for _, obj := range resp {
		if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
			return fmt.Errorf("object %s rejected: %s", obj.ID, obj.Result.Errors.Error[0].Message)
		}
	}
	return nil
}

func (s *WeaviateStore) Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query vector dimension %d, want %d", len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 3
	}

	fields := []graphql.Field{
		{Name: "text"},
		{Name: "article_title"},
		{Name: "article_url"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	result, err := s.client.GraphQL().Get().
		WithClassName(s.collection).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("search failed: %s", result.Errors[0].Message)
	}

	return parseSearchResults(result.Data, s.collection), nil
}

func parseSearchResults(data map[string]models.JSONObject, collection string) []SearchResult {
	results := []SearchResult{}

	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return results
	}
	items, ok := get[collection].([]interface{})
	if !ok {
		return results
	}

	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		res := SearchResult{
			Payload: Payload{
				Text:         asString(obj["text"]),
				ArticleTitle: asString(obj["article_title"]),
				ArticleURL:   asString(obj["article_url"]),
			},
		}
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if d, ok := additional["distance"].(float64); ok {
				res.Distance = float32(d)
			}
		}
		results = append(results, res)
	}
	return results
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
