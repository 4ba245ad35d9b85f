package router

import (
	"github.com/labstack/echo/v4"

	"assessMatch/internal/rest"
)

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	api.POST("/recommend", handler.Recommend)
}

func SetupAssessmentRoutes(api *echo.Group, handler *rest.AssessmentHandler) {
	assessments := api.Group("/assessments")
	assessments.GET("", handler.GetAllAssessments)
}

// SetupRootRoutes registers the non-versioned endpoints. POST /recommend is
// kept as an alias for the original deployment's path.
func SetupRootRoutes(e *echo.Echo, handler *rest.RecommendHandler) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
	e.POST("/recommend", handler.Recommend)
}
