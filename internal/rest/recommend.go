package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"assessMatch/domain"
	"assessMatch/pkg/metrics"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
	}

	RecommendService interface {
		Recommend(ctx context.Context, query string, k int) ([]domain.Assessment, error)
	}

	RecommendRequest struct {
		Query string `json:"query" validate:"required,min=1"`
		K     int    `json:"k" validate:"gte=0"`
	}
)

func NewRecommendHandler(svc RecommendService) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
	}
}

// Recommend handles POST /recommend. The response body is kept shape-stable
// with the original deployment: {"recommended_assessments": [...]}.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	recs, err := h.recommendService.Recommend(c.Request().Context(), req.Query, req.K)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequestsTotal.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	if recs == nil {
		recs = []domain.Assessment{}
	}

	return c.JSON(http.StatusOK, domain.RecommendationResponse{RecommendedAssessments: recs})
}

// Health handles GET /health.
func (h *RecommendHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Root handles GET / with a small service info document.
func (h *RecommendHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "Assessment Recommendation API",
		"status":  "running",
		"endpoints": map[string]string{
			"health":      "GET /health - check service health",
			"recommend":   "POST /api/v1/recommend - get assessment recommendations",
			"assessments": "GET /api/v1/assessments - list the loaded catalog",
			"metrics":     "GET /metrics - prometheus metrics",
		},
	})
}
