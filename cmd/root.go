package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/behalnihal/rag-chatbot-backend/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rag-chatbot-backend",
	Short: "RAG chatbot over a news article corpus",
	Long: `Backend for a retrieval-augmented chatbot: ingests news articles into a
vector index and answers questions grounded in the retrieved passages, keeping
a per-session conversation transcript.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(cfgFile)
}

func newLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
