package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string            `mapstructure:"port"`
	TopK        int               `mapstructure:"top_k"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	VectorStore VectorStoreConfig `mapstructure:"vector_store"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Ingest      IngestConfig      `mapstructure:"ingest"`
}

type EmbeddingConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Model     string        `mapstructure:"model"`
	Dimension int           `mapstructure:"dimension"`
	Timeout   time.Duration `mapstructure:"timeout"`
	APIKey    string        `mapstructure:"JINA_API_KEY"`
}

type GenerationConfig struct {
	Model   string `mapstructure:"model"`
	APIKeys string `mapstructure:"GEMINI_API_KEYS"` // comma separated, rotated on quota errors
}

type VectorStoreConfig struct {
	Host       string `mapstructure:"host"`
	Collection string `mapstructure:"collection"`
	APIKey     string `mapstructure:"WEAVIATE_APIKEY"`
}

type RedisConfig struct {
	Addr          string `mapstructure:"REDIS_ADDR"`
	Password      string `mapstructure:"REDIS_PASSWORD"`
	SessionPrefix string `mapstructure:"session_prefix"`
}

type IngestConfig struct {
	ChunkSize       int           `mapstructure:"chunk_size"`
	EmbedBatchSize  int           `mapstructure:"embed_batch_size"`
	UpsertBatchSize int           `mapstructure:"upsert_batch_size"`
	BatchPacing     time.Duration `mapstructure:"batch_pacing"`
	Concurrency     int           `mapstructure:"concurrency"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("top_k", 3)
	v.SetDefault("embedding.endpoint", "https://api.jina.ai/v1")
	v.SetDefault("embedding.model", "jina-embeddings-v2-base-en")
	v.SetDefault("embedding.dimension", 768)
	v.SetDefault("embedding.timeout", 30*time.Second)
	v.SetDefault("generation.model", "gemini-1.5-flash")
	v.SetDefault("vector_store.host", "http://localhost:8080")
	v.SetDefault("vector_store.collection", "ArticleChunk")
	v.SetDefault("redis.REDIS_ADDR", "localhost:6379")
	v.SetDefault("redis.session_prefix", "chat_history:")
	v.SetDefault("ingest.chunk_size", 300)
	v.SetDefault("ingest.embed_batch_size", 8)
	v.SetDefault("ingest.upsert_batch_size", 100)
	v.SetDefault("ingest.batch_pacing", 200*time.Millisecond)
	v.SetDefault("ingest.concurrency", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind secrets from the environment
	v.BindEnv("embedding.JINA_API_KEY", "JINA_API_KEY")
	v.BindEnv("generation.GEMINI_API_KEYS", "GEMINI_API_KEYS")
	v.BindEnv("vector_store.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("redis.REDIS_ADDR", "REDIS_ADDR")
	v.BindEnv("redis.REDIS_PASSWORD", "REDIS_PASSWORD")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// GeminiKeys splits the comma-separated key list from the environment.
func (c *Config) GeminiKeys() []string {
	var keys []string
	for _, k := range strings.Split(c.Generation.APIKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
