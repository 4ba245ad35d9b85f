package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"assessMatch/domain"
)

type (
	AssessmentHandler struct {
		catalogService CatalogService
	}

	CatalogService interface {
		All() []domain.Assessment
	}
)

func NewAssessmentHandler(svc CatalogService) *AssessmentHandler {
	return &AssessmentHandler{catalogService: svc}
}

// GetAllAssessments handles GET /api/v1/assessments.
func (h *AssessmentHandler) GetAllAssessments(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.All()))
}
