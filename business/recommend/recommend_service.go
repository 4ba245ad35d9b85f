package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"assessMatch/domain"
	"assessMatch/pkg/logger"
	"assessMatch/pkg/metrics"
)

// ---- Repository interfaces ----

// Embedder turns text into an embedding vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Generator sends a prompt to a language model and returns the raw text answer.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// VectorStore indexes catalog documents and answers nearest-neighbour queries.
type VectorStore interface {
	Upsert(ctx context.Context, docs []domain.VectorDocument) error
	Search(ctx context.Context, vector []float32, k int) ([]domain.VectorHit, error)
}

// CatalogRepository is the slice of the catalog service this engine needs.
type CatalogRepository interface {
	All() []domain.Assessment
	FindByName(name string) (domain.Assessment, bool)
	Document(a domain.Assessment) string
}

// ResponseCache caches full recommendation responses. Get returns (nil, nil)
// on a miss.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*domain.RecommendationResponse, error)
	Set(ctx context.Context, key string, resp *domain.RecommendationResponse) error
}

// ---- Usecase / Service ----

type Config struct {
	// RetrievalK is how many neighbours to pull from the vector store.
	RetrievalK int
	// MaxResults is the default k for a recommendation.
	MaxResults int
	// MinPerCategory are the balance floors handed to the selector.
	MinPerCategory map[string]int
}

type Service struct {
	catalog   CatalogRepository
	embedder  Embedder
	generator Generator
	store     VectorStore
	cache     ResponseCache // nil when caching is disabled
	cfg       Config
}

func NewService(
	catalog CatalogRepository,
	embedder Embedder,
	generator Generator,
	store VectorStore,
	cache ResponseCache,
	cfg Config,
) *Service {
	if cfg.RetrievalK <= 0 {
		cfg.RetrievalK = 20
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}

	return &Service{
		catalog:   catalog,
		embedder:  embedder,
		generator: generator,
		store:     store,
		cache:     cache,
		cfg:       cfg,
	}
}

// BuildIndex embeds every catalog document and loads the vector store.
// Called once at startup.
func (s *Service) BuildIndex(ctx context.Context) error {
	items := s.catalog.All()
	docs := make([]domain.VectorDocument, 0, len(items))

	for _, a := range items {
		vec, err := s.embedder.EmbedText(ctx, s.catalog.Document(a))
		if err != nil {
			return fmt.Errorf("embed catalog document %q: %w", a.Name, err)
		}
		docs = append(docs, domain.VectorDocument{Name: a.Name, Vector: vec})
	}

	if err := s.store.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("load vector store: %w", err)
	}

	logger.Info("vector index built", "documents", len(docs))
	return nil
}

// Recommend runs the full pipeline for one query: embed, retrieve, ask the
// LLM to pick names, resolve names to catalog rows, then balance the result.
// A failing LLM call degrades to raw retrieval order; both paths go through
// the same balanced selector.
func (s *Service) Recommend(ctx context.Context, query string, k int) ([]domain.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if k <= 0 {
		k = s.cfg.MaxResults
	}

	tid := TraceIDFromContext(ctx)

	cacheKey := s.cacheKey(query, k)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
			logger.Warn("response cache read failed", "trace_id", tid, "error", err)
		} else if cached != nil {
			metrics.CacheHitsTotal.Inc()
			logger.Debug("recommend served from cache", "trace_id", tid, "query", query)
			return cached.RecommendedAssessments, nil
		}
	}

	// 1) retrieve
	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.store.Search(ctx, queryVec, s.cfg.RetrievalK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(hits) == 0 {
		return []domain.Assessment{}, nil
	}

	scoreByName := make(map[string]float64, len(hits))
	contextDocs := make([]string, 0, len(hits))
	retrieved := make([]domain.ScoredAssessment, 0, len(hits))
	for _, h := range hits {
		a, ok := s.catalog.FindByName(h.Name)
		if !ok {
			continue
		}
		scoreByName[a.Name] = h.Score
		contextDocs = append(contextDocs, s.catalog.Document(a))
		retrieved = append(retrieved, domain.ScoredAssessment{Assessment: a, Score: h.Score})
	}

	// 2) generate + resolve, falling back to retrieval order when the LLM
	// is unavailable
	candidates := retrieved
	answer, err := s.generator.GenerateContent(ctx, buildPrompt(query, contextDocs))
	if err != nil {
		metrics.LLMFallbacksTotal.Inc()
		logger.Warn("llm unavailable, serving retrieval order",
			"trace_id", tid,
			"query", query,
			"error", err,
		)
	} else {
		names := ParseNames(answer)
		logger.Debug("llm answer parsed",
			"trace_id", tid,
			"names", len(names),
			"retrieved", len(retrieved),
		)

		resolved := make([]domain.ScoredAssessment, 0, len(names))
		for _, name := range names {
			a, ok := s.catalog.FindByName(name)
			if !ok {
				logger.Debug("no catalog match for llm name", "trace_id", tid, "name", name)
				continue
			}
			resolved = append(resolved, domain.ScoredAssessment{
				Assessment: a,
				Score:      scoreByName[a.Name],
			})
		}

		if len(resolved) > 0 {
			candidates = resolved
		} else {
			metrics.LLMFallbacksTotal.Inc()
			logger.Warn("llm answer resolved to nothing, serving retrieval order",
				"trace_id", tid,
				"query", query,
			)
		}
	}

	// 3) balance
	selected, err := Select(candidates, k, s.cfg.MinPerCategory)
	if err != nil {
		return nil, fmt.Errorf("balanced selection: %w", err)
	}

	out := make([]domain.Assessment, 0, len(selected))
	for _, sc := range selected {
		out = append(out, sc.Assessment)
	}

	logger.Info("recommendation served",
		"trace_id", tid,
		"query", query,
		"k", k,
		"candidates", len(candidates),
		"returned", len(out),
	)

	if s.cache != nil {
		resp := &domain.RecommendationResponse{RecommendedAssessments: out}
		if err := s.cache.Set(ctx, cacheKey, resp); err != nil {
			logger.Warn("response cache write failed", "trace_id", tid, "error", err)
		}
	}

	return out, nil
}

func (s *Service) cacheKey(query string, k int) string {
	sum := sha256.Sum256([]byte(strings.ToLower(query) + "|" + strconv.Itoa(k)))
	return hex.EncodeToString(sum[:])
}
