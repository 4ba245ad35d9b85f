package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"assessMatch/app/echo-server/router"
	"assessMatch/business/catalog"
	"assessMatch/business/recommend"
	"assessMatch/domain"
	"assessMatch/internal/middleware"
	geminiRepo "assessMatch/internal/repository/gemini"
	"assessMatch/internal/repository/memindex"
	milvusRepo "assessMatch/internal/repository/milvus"
	openaiRepo "assessMatch/internal/repository/openai"
	redisRepo "assessMatch/internal/repository/redis"
	"assessMatch/internal/rest"
	"assessMatch/pkg/config"
	"assessMatch/pkg/logger"
	"assessMatch/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting assessMatch", "version", cfg.App.Version)

	metrics.Init()

	ctx := context.Background()

	// Init catalog
	catalogService, err := catalog.NewService(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", "error", err)
	}

	// Init AI provider
	embedder, generator, err := buildProvider(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to init ai provider", "error", err)
	}
	logger.Info("AI provider ready", "provider", cfg.AI.Provider, "model", cfg.AI.Model)

	// Init vector store
	store, err := buildVectorStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to init vector store", "error", err)
	}
	logger.Info("Vector store ready", "backend", cfg.VectorStore.Backend)

	// Init optional response cache
	var cache recommend.ResponseCache
	if cfg.Redis.Enabled {
		client := goredis.NewClient(&goredis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		cache = redisRepo.NewRecommendationCache(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		logger.Info("Response cache enabled", "ttl_seconds", cfg.Redis.TTLSeconds)
	}

	// Init service
	recommendService := recommend.NewService(catalogService, embedder, generator, store, cache, recommend.Config{
		RetrievalK: cfg.Retrieval.K,
		MaxResults: cfg.Retrieval.MaxResults,
		MinPerCategory: map[string]int{
			domain.CategoryTechnical:  cfg.Retrieval.MinTechnical,
			domain.CategoryBehavioral: cfg.Retrieval.MinBehavioral,
		},
	})

	if err := recommendService.BuildIndex(ctx); err != nil {
		logger.Fatal("Failed to build vector index", "error", err)
	}

	// Init handlers
	recommendHandler := rest.NewRecommendHandler(recommendService)
	assessmentHandler := rest.NewAssessmentHandler(catalogService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.TraceMiddleware())

	// Setup routes
	router.SetupRootRoutes(e, recommendHandler)
	api := e.Group("/api/v1")
	router.SetupRecommendRoutes(api, recommendHandler)
	router.SetupAssessmentRoutes(api, assessmentHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func buildProvider(ctx context.Context, cfg *config.Config) (recommend.Embedder, recommend.Generator, error) {
	switch cfg.AI.Provider {
	case "gemini":
		repo, err := geminiRepo.NewRepository(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	case "openai":
		repo := openaiRepo.NewRepository(
			cfg.AI.OpenAIBaseURL,
			cfg.AI.APIKey,
			cfg.AI.Model,
			cfg.AI.EmbedModel,
			&http.Client{Timeout: 60 * time.Second},
		)
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.AI.Provider)
	}
}

func buildVectorStore(ctx context.Context, cfg *config.Config) (recommend.VectorStore, error) {
	switch cfg.VectorStore.Backend {
	case "memory":
		return memindex.New(), nil
	case "milvus":
		return milvusRepo.NewRepository(
			ctx,
			cfg.VectorStore.MilvusHost,
			cfg.VectorStore.MilvusPort,
			cfg.VectorStore.MilvusCollection,
			cfg.VectorStore.EmbeddingDim,
		)
	default:
		return nil, fmt.Errorf("unsupported vector store backend: %s", cfg.VectorStore.Backend)
	}
}
