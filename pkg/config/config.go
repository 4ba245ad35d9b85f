package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	AI          AIConfig
	Catalog     CatalogConfig
	Retrieval   RetrievalConfig
	VectorStore VectorStoreConfig
	Redis       RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type AIConfig struct {
	Provider      string // "gemini" or "openai"
	APIKey        string
	Model         string
	EmbedModel    string
	OpenAIBaseURL string
}

type CatalogConfig struct {
	Path string
}

type RetrievalConfig struct {
	// K is how many neighbours are pulled from the vector store per query.
	K int
	// MaxResults caps the final recommendation list.
	MaxResults int
	// MinTechnical / MinBehavioral are the per-category floors enforced
	// by the balanced selector.
	MinTechnical  int
	MinBehavioral int
}

type VectorStoreConfig struct {
	Backend          string // "memory" or "milvus"
	MilvusHost       string
	MilvusPort       int
	MilvusCollection string
	EmbeddingDim     int
}

type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       string
	Password   string
	DB         int
	TTLSeconds int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "assessMatch"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		AI: AIConfig{
			Provider:      getEnv("AI_PROVIDER", "gemini"),
			Model:         getEnv("AI_MODEL", ""),
			EmbedModel:    getEnv("AI_EMBED_MODEL", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/catalog.csv"),
		},
		Retrieval: RetrievalConfig{
			K:             getEnvInt("RETRIEVAL_K", 20),
			MaxResults:    getEnvInt("MAX_RESULTS", 10),
			MinTechnical:  getEnvInt("MIN_TECHNICAL", 1),
			MinBehavioral: getEnvInt("MIN_BEHAVIORAL", 1),
		},
		VectorStore: VectorStoreConfig{
			Backend:          getEnv("VECTOR_STORE", "memory"),
			MilvusHost:       getEnv("MILVUS_HOST", "127.0.0.1"),
			MilvusPort:       getEnvInt("MILVUS_PORT", 19530),
			MilvusCollection: getEnv("MILVUS_COLLECTION", "assessments"),
			EmbeddingDim:     getEnvInt("EMBEDDING_DIM", 768),
		},
		Redis: RedisConfig{
			Enabled:    getEnvBool("REDIS_ENABLED", false),
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			TTLSeconds: getEnvInt("REDIS_TTL_SECONDS", 600),
		},
	}

	switch cfg.AI.Provider {
	case "gemini":
		cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.AI.Model == "" {
			cfg.AI.Model = "gemini-2.0-flash"
		}
		if cfg.AI.EmbedModel == "" {
			cfg.AI.EmbedModel = "text-embedding-004"
		}
	case "openai":
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.AI.Model == "" {
			cfg.AI.Model = "gpt-3.5-turbo"
		}
		if cfg.AI.EmbedModel == "" {
			cfg.AI.EmbedModel = "text-embedding-3-small"
		}
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.AI.Provider)
	}

	if cfg.AI.APIKey == "" {
		return nil, errors.New("missing api key for ai provider " + cfg.AI.Provider)
	}

	if cfg.VectorStore.Backend != "memory" && cfg.VectorStore.Backend != "milvus" {
		return nil, fmt.Errorf("unsupported vector store backend: %s", cfg.VectorStore.Backend)
	}

	if cfg.Retrieval.MinTechnical < 0 || cfg.Retrieval.MinBehavioral < 0 {
		return nil, errors.New("category floors must not be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}
