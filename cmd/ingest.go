package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/behalnihal/rag-chatbot-backend/database"
	"github.com/behalnihal/rag-chatbot-backend/service"
	"github.com/behalnihal/rag-chatbot-backend/types"
)

// ingestCmd loads articles into the vector index, either from an RSS feed or
// from JSON files on disk. Re-running without --reset duplicates points
// because every run generates fresh point ids.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest news articles into the vector index",
	RunE: func(cmd *cobra.Command, args []string) error {
		feedURL, _ := cmd.Flags().GetString("feed")
		dir, _ := cmd.Flags().GetString("dir")
		limit, _ := cmd.Flags().GetInt("limit")
		reset, _ := cmd.Flags().GetBool("reset")

		if feedURL == "" && dir == "" {
			return errors.New("one of --feed or --dir is required")
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		vectorDB, err := database.NewWeaviateStore(cfg.VectorStore, cfg.Embedding.Dimension, cfg.Ingest.UpsertBatchSize, log)
		if err != nil {
			return err
		}
		if reset {
			if err := vectorDB.DropCollection(ctx); err != nil {
				log.Warnw("drop collection before ingest", "error", err)
			}
		}

		feedService := service.NewFeedService(log)
		var docs []types.Document
		if feedURL != "" {
			docs, err = feedService.FetchArticles(ctx, feedURL, limit)
		} else {
			docs, err = feedService.LoadArticlesDir(dir)
		}
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			log.Warnw("nothing to ingest")
			return nil
		}

		embedder := service.NewJinaEmbedder(cfg.Embedding)
		ingestService := service.NewIngestService(embedder, vectorDB, cfg.Ingest, log)

		if err := ingestService.Run(ctx, docs); err != nil {
			return err
		}
		log.Infow("ingestion complete", "documents", len(docs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("feed", "", "RSS feed URL to ingest")
	ingestCmd.Flags().String("dir", "", "directory of article JSON files to ingest")
	ingestCmd.Flags().Int("limit", 50, "maximum number of feed articles to ingest")
	ingestCmd.Flags().Bool("reset", false, "drop the collection before ingesting")
}
