package cmd

import (
	"github.com/spf13/cobra"

	"github.com/behalnihal/rag-chatbot-backend/database"
)

// resetCollectionCmd drops and recreates the vector collection. This is the
// operator's way to make ingestion re-runnable without duplicate points.
var resetCollectionCmd = &cobra.Command{
	Use:   "reset-collection",
	Short: "Drop and recreate the vector collection",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if err := vectorDB.DropCollection(ctx); err != nil {
			log.Warnw("drop collection", "error", err)
		}
		if err := vectorDB.EnsureCollection(ctx); err != nil {
			return err
		}
		log.Infow("collection reset", "collection", cfg.VectorStore.Collection)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCollectionCmd)
}
