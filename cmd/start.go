package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/behalnihal/rag-chatbot-backend/database"
	"github.com/behalnihal/rag-chatbot-backend/handler"
	"github.com/behalnihal/rag-chatbot-backend/service"
)

// serveCmd starts the chat API server. Clients are connected once here and
// injected into the services; nothing else holds process-wide state.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat API server",
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

		embedder := service.NewJinaEmbedder(cfg.Embedding)

		vectorDB, err := database.NewWeaviateStore(cfg.VectorStore, cfg.Embedding.Dimension, cfg.Ingest.UpsertBatchSize, log)
		if err != nil {
			return err
		}
		if err := vectorDB.EnsureCollection(ctx); err != nil {
			return err
		}

		sessionStore, err := database.NewRedisStore(cfg.Redis)
		if err != nil {
			return err
		}
		defer sessionStore.Close()

		generator, err := service.NewGeminiService(ctx, cfg.GeminiKeys(), cfg.Generation.Model, log)
		if err != nil {
			return err
		}
		defer generator.Close()

		chatService := service.NewChatService(embedder, vectorDB, generator, sessionStore, cfg.TopK, log)

		chatHandler := handler.NewChatHandler(chatService)
		sessionHandler := handler.NewSessionHandler(chatService)

		router := gin.Default()
		router.Use(handler.CORSMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/chat", chatHandler.HandleChat)
			apiV1.GET("/sessions/:id/history", sessionHandler.HandleHistory)
			apiV1.DELETE("/sessions/:id", sessionHandler.HandleClear)
		}

		log.Infow("starting server", "port", cfg.Port)
		return router.Run(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
