package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every tunable the service reads from the environment.
type Config struct {
	ListenAddr string
	UploadDir  string

	PGHost   string
	PGPort   int
	PGUser   string
	PGPass   string
	PGDBName string
	ConnMode string // "pooled" or "single"

	ProviderBaseURL string
	ProviderAPIKey  string
	EmbeddingModel  string
	EmbeddingDim    int
	ChatModel       string
	MaxTokens       int
	Temperature     float32

	ChunkSize    int
	AnswerLimit  int
	MaxAttempts  int
	InitialDelay time.Duration
}

// Load reads the configuration from the environment. Defaults cover
// everything except the provider API key.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr: getenv("SERVER_ADDR", ":8080"),
		UploadDir:  getenv("UPLOAD_DIR", "uploads"),

		PGHost:   getenv("PG_HOST", "localhost"),
		PGPort:   getint("PG_PORT", 5432),
		PGUser:   getenv("PG_USER", "postgres"),
		PGPass:   getenv("PG_PASS", "postgres"),
		PGDBName: getenv("PG_DB_NAME", "vectors"),
		ConnMode: getenv("PG_CONN_MODE", "pooled"),

		ProviderBaseURL: getenv("PROVIDER_BASE_URL", "https://api.openai.com/v1"),
		ProviderAPIKey:  os.Getenv("PROVIDER_API_KEY"),
		EmbeddingModel:  getenv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDim:    getint("EMBEDDING_DIM", 1536),
		ChatModel:       getenv("CHAT_MODEL", "gpt-4o-mini"),
		MaxTokens:       getint("MAX_TOKENS", 1024),
		Temperature:     getfloat("TEMPERATURE", 0.2),

		ChunkSize:    getint("CHUNK_SIZE", 500),
		AnswerLimit:  getint("ANSWER_LIMIT", 3),
		MaxAttempts:  getint("RETRY_MAX_ATTEMPTS", 3),
		InitialDelay: getduration("RETRY_INITIAL_DELAY", time.Second),
	}

	if cfg.ProviderAPIKey == "" {
		return nil, fmt.Errorf("PROVIDER_API_KEY is not set")
	}
	if cfg.ConnMode != "pooled" && cfg.ConnMode != "single" {
		return nil, fmt.Errorf("PG_CONN_MODE must be 'pooled' or 'single', got %q", cfg.ConnMode)
	}

	return cfg, nil
}

// ConnString builds the pgx connection string.
func (c *Config) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.PGHost, c.PGPort, c.PGUser, c.PGPass, c.PGDBName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getfloat(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
