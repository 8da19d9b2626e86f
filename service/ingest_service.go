package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/behalnihal/rag-chatbot-backend/config"
	"github.com/behalnihal/rag-chatbot-backend/database"
	"github.com/behalnihal/rag-chatbot-backend/types"
	"github.com/behalnihal/rag-chatbot-backend/utils"
)

const (
	embedMaxAttempts = 3
	embedBackoffStep = 500 * time.Millisecond
)

// IngestService loads a batch of documents into the vector index: chunk,
// embed in paced batches, upsert. Point ids are freshly generated per run,
// so re-ingesting without resetting the collection duplicates points.
type IngestService struct {
	embedder Embedder
	index    database.VectorIndex
	cfg      config.IngestConfig
	log      *zap.SugaredLogger
}

func NewIngestService(embedder Embedder, index database.VectorIndex, cfg config.IngestConfig, log *zap.SugaredLogger) *IngestService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = 8
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &IngestService{
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		log:      log.With("service", "IngestService"),
	}
}

// Run ingests the documents, fanning out across documents up to the
// configured concurrency (1 keeps the job strictly sequential). The first
// unrecoverable failure cancels the whole job; there is no checkpointing, the
// operator fixes the root cause and reruns.
func (s *IngestService) Run(ctx context.Context, docs []types.Document) error {
	if err := s.index.EnsureCollection(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if err := s.ingestDocument(ctx, doc); err != nil {
				return fmt.Errorf("document %s: %w", doc.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *IngestService) ingestDocument(ctx context.Context, doc types.Document) error {
	chunks := ChunkDocument(doc, s.cfg.ChunkSize)
	if len(chunks) == 0 {
		s.log.Infow("document has no content, skipping", "document", doc.ID)
		return nil
	}

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return err
	}

	points := make([]database.Point, len(chunks))
	for i, chunk := range chunks {
		points[i] = database.Point{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Payload: database.Payload{
				Text:         chunk.Text,
				ArticleTitle: chunk.Title,
				ArticleURL:   chunk.URL,
			},
		}
	}

	if err := s.index.UpsertPoints(ctx, points); err != nil {
		return err
	}
	s.log.Infow("ingested document", "document", doc.ID, "title", doc.Title, "chunks", len(chunks))
	return nil
}

// embedChunks embeds chunk texts in fixed-size batches, pacing between
// batches to stay under the provider's rate limits. Order is preserved
// across batch boundaries.
func (s *IngestService) embedChunks(ctx context.Context, chunks []types.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += s.cfg.EmbedBatchSize {
		end := start + s.cfg.EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		if start > 0 && s.cfg.BatchPacing > 0 {
			select {
			case <-time.After(s.cfg.BatchPacing):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		var batchVectors [][]float32
		err := utils.Retry(ctx, embedMaxAttempts, utils.LinearBackoff(embedBackoffStep), func() error {
			var embedErr error
			batchVectors, embedErr = s.embedder.EmbedTexts(ctx, texts)
			return embedErr
		})
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		vectors = append(vectors, batchVectors...)
	}
	return vectors, nil
}
