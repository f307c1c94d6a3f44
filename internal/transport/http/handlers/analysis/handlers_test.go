package analysishandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"skillhub/internal/domain/analysis"
	"skillhub/internal/domain/assessment"
	"skillhub/internal/platform/cache"
	"skillhub/internal/platform/logger"
	"skillhub/internal/platform/metrics"
	"skillhub/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type stubStore struct {
	assessments []assessment.RawAssessment
	softSkills  []assessment.SoftSkillDefinition
}

func (s *stubStore) ListAssessments(context.Context) ([]assessment.RawAssessment, error) {
	return s.assessments, nil
}

func (s *stubStore) AssessmentByEmail(_ context.Context, email string) (assessment.RawAssessment, error) {
	for _, record := range s.assessments {
		if record.Email == email {
			return record, nil
		}
	}
	return assessment.RawAssessment{}, assessment.ErrNotFound
}

func (s *stubStore) SelfAssessmentByEmail(context.Context, string) (assessment.SelfAssessment, error) {
	return assessment.SelfAssessment{}, assessment.ErrNotFound
}

func (s *stubStore) ManagerAssessmentByEmail(context.Context, string) (assessment.ManagerAssessment, error) {
	return assessment.ManagerAssessment{}, assessment.ErrNotFound
}

func (s *stubStore) ListRequiredSkills(context.Context) ([]assessment.RequiredSkills, error) {
	return nil, nil
}

func (s *stubStore) RequiredSkillsFor(context.Context, string, string) (assessment.RequiredSkills, error) {
	return assessment.RequiredSkills{}, assessment.ErrNotFound
}

func (s *stubStore) ListSoftSkills(context.Context) ([]assessment.SoftSkillDefinition, error) {
	return s.softSkills, nil
}

func newTestRouter(store *stubStore) *chi.Mux {
	log := logger.NewNop()
	cacheSvc := cache.NewService(cache.NewMemoryStore(), log, metrics.New("test"), 48*time.Hour, time.Hour)
	svc := analysis.NewService(store, cacheSvc, log, metrics.New("test"), analysis.Config{
		TopSkillsLimit:   5,
		Thresholds:       analysis.StatusThresholds{WarningBelow: 2, CriticalBelow: 1},
		FetchConcurrency: 4,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	NewHandler(svc, log).RegisterRoutes(router)
	return router
}

func adminToken(t *testing.T) string {
	t.Helper()
	claims := middleware.Claims{
		UserID: "u1",
		Email:  "admin@x.com",
		Role:   middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestRankingsEndpoint(t *testing.T) {
	router := newTestRouter(&stubStore{
		assessments: []assessment.RawAssessment{
			{Email: "ana@x.com", Name: "Ana", SkillAverages: map[string]float64{"A": 4.5}},
			{Email: "cid@x.com", Name: "Cid", SkillAverages: map[string]float64{"A": 3.0}},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analysis/rankings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool              `json:"success"`
		Data    analysis.Rankings `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || len(envelope.Data.Entries) != 2 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if envelope.Data.Entries[0].Name != "Ana" || envelope.Data.Entries[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", envelope.Data.Entries[0])
	}
}

func TestOrganizationAnalysisNotFound(t *testing.T) {
	router := newTestRouter(&stubStore{
		assessments: []assessment.RawAssessment{{Email: "a@x.com", Capability: "QA"}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analysis/organization?capability=Finance", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEmployeeAnalysisNotFound(t *testing.T) {
	router := newTestRouter(&stubStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analysis/employees/ghost@x.com", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminAnalysisRequiresAdmin(t *testing.T) {
	router := newTestRouter(&stubStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analysis/admin", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analysis/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestInvalidateCacheEndpoint(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := adminToken(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", strings.NewReader(`{"category":"analysis"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", strings.NewReader(`{"category":"everything"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrganizationExportReturnsPDF(t *testing.T) {
	router := newTestRouter(&stubStore{
		assessments: []assessment.RawAssessment{
			{Email: "a@x.com", Capability: "QA", SkillAverages: map[string]float64{"Test Planning": 4}},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analysis/organization/export?capability=QA", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatal("expected a PDF payload")
	}
}
