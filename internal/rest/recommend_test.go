package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"assessMatch/domain"
)

type stubRecommendService struct {
	recs  []domain.Assessment
	err   error
	query string
	k     int
}

func (s *stubRecommendService) Recommend(_ context.Context, query string, k int) ([]domain.Assessment, error) {
	s.query = query
	s.k = k
	return s.recs, s.err
}

func doRecommend(t *testing.T, svc *stubRecommendService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewRecommendHandler(svc).Recommend(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRecommendEndpoint(t *testing.T) {
	svc := &stubRecommendService{recs: []domain.Assessment{
		{Name: "Java Programming", URL: "https://example.com/java", TestType: []string{"Knowledge & Skills"}},
	}}

	rec := doRecommend(t, svc, `{"query":"Java developer","k":3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.query != "Java developer" || svc.k != 3 {
		t.Fatalf("service got query=%q k=%d", svc.query, svc.k)
	}

	var resp domain.RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.RecommendedAssessments) != 1 || resp.RecommendedAssessments[0].Name != "Java Programming" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRecommendEndpointEmptyResultIsArray(t *testing.T) {
	rec := doRecommend(t, &stubRecommendService{}, `{"query":"obscure role"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"recommended_assessments":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestRecommendEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing query", `{"k":3}`},
		{"empty query", `{"query":""}`},
		{"negative k", `{"query":"Java developer","k":-1}`},
		{"malformed json", `{"query":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRecommend(t, &stubRecommendService{}, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRecommendEndpointServiceError(t *testing.T) {
	svc := &stubRecommendService{err: errors.New("provider unavailable")}

	rec := doRecommend(t, svc, `{"query":"Java developer"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "provider unavailable") {
		t.Fatalf("expected error message in body, got %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewRecommendHandler(&stubRecommendService{}).Health(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestGetAllAssessments(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	catalog := &stubCatalogService{items: []domain.Assessment{
		{Name: "Java Programming"},
		{Name: "Teamwork Styles Assessment"},
	}}
	if err := NewAssessmentHandler(catalog).GetAllAssessments(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Teamwork Styles Assessment") {
		t.Fatalf("expected catalog items in body, got %s", rec.Body.String())
	}
}

type stubCatalogService struct {
	items []domain.Assessment
}

func (s *stubCatalogService) All() []domain.Assessment { return s.items }
