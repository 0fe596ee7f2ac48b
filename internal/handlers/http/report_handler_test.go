package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/middleware"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

type stubReportRepo struct {
	buckets   []repositories.RevenueBucket
	lines     []repositories.LinePerformance
	err       error
	scope     *string
	bucketing valueobjects.Bucketing
}

func (s *stubReportRepo) Revenue(_ context.Context, scope *string, b valueobjects.Bucketing) ([]repositories.RevenueBucket, error) {
	s.scope, s.bucketing = scope, b
	return s.buckets, s.err
}

func (s *stubReportRepo) Performance(_ context.Context, scope *string, _ int) ([]repositories.LinePerformance, error) {
	s.scope = scope
	return s.lines, s.err
}

func (s *stubReportRepo) Dashboard(_ context.Context, scope *string, _ time.Time) (*repositories.DashboardSummary, error) {
	s.scope = scope
	if s.err != nil {
		return nil, s.err
	}
	return &repositories.DashboardSummary{UpcomingTrips: 4, RevenueToday: 120000}, nil
}

// withScope simula a cadeia já resolvida (RequireOrganization)
func withScope(scope *string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := &entities.Identity{UserID: "u-1", Role: entities.RoleOperator}
		c.Set(middleware.IdentityContextKey, identity)
		c.Set(middleware.AuthorizationContextKey, &entities.AuthorizationContext{
			Identity:          identity,
			Role:              entities.RoleOperator,
			OrganizationScope: scope,
			Scoped:            true,
		})
		c.Next()
	}
}

func setupReportRouter(repo *stubReportRepo, exposeErrors bool, scope *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(services.NewReportService(repo, logging.NewNopLogger()), exposeErrors)

	router := gin.New()
	router.GET("/revenue", withScope(scope), handler.Revenue)
	router.GET("/performance", withScope(scope), handler.Performance)
	router.GET("/dashboard", withScope(scope), handler.Dashboard)
	router.GET("/unscoped", handler.Revenue)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestReportHandler_Revenue(t *testing.T) {
	org := "5f0c6a52-1b7e-4d5b-9a55-3f1f2a7e0c11"

	t.Run("envelope success/data com buckets zerados", func(t *testing.T) {
		day := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		repo := &stubReportRepo{buckets: []repositories.RevenueBucket{{Period: day}, {Period: day.Add(time.Hour)}}}
		router := setupReportRouter(repo, false, &org)

		w := get(router, "/revenue?period=day")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Data    []struct {
				Period     time.Time `json:"period"`
				Revenue    float64   `json:"revenue"`
				Trips      int64     `json:"trips"`
				Passengers int64     `json:"passengers"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Data, 2)
		for _, b := range body.Data {
			assert.Zero(t, b.Revenue)
			assert.Zero(t, b.Trips)
			assert.Zero(t, b.Passengers)
		}
		assert.Equal(t, org, *repo.scope)
		assert.Equal(t, "hour", repo.bucketing.Unit)
	})

	t.Run("lista vazia vira [] e não null", func(t *testing.T) {
		router := setupReportRouter(&stubReportRepo{}, false, nil)

		w := get(router, "/revenue")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	})

	t.Run("fora de produção o 500 expõe a causa", func(t *testing.T) {
		router := setupReportRouter(&stubReportRepo{err: errors.New(`relation "payments" does not exist`)}, true, &org)

		w := get(router, "/revenue")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `relation \"payments\" does not exist`)
	})

	t.Run("em produção o 500 esconde a causa", func(t *testing.T) {
		router := setupReportRouter(&stubReportRepo{err: errors.New(`relation "payments" does not exist`)}, false, &org)

		w := get(router, "/revenue")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "payments")
		assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	})

	t.Run("sem escopo resolvido retorna 403", func(t *testing.T) {
		router := setupReportRouter(&stubReportRepo{}, false, nil)

		w := get(router, "/unscoped")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReportHandler_PerformanceAndDashboard(t *testing.T) {
	repo := &stubReportRepo{lines: []repositories.LinePerformance{
		{LineName: "Kinshasa → Matadi", Revenue: 450000, OccupancyRate: 78, TripsCount: 12},
		{LineName: "Kinshasa → Kikwit", TripsCount: 2},
	}}
	router := setupReportRouter(repo, false, nil)

	w := get(router, "/performance")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			LineName      string  `json:"line_name"`
			Revenue       float64 `json:"revenue"`
			OccupancyRate int64   `json:"occupancy_rate"`
			TripsCount    int64   `json:"trips_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Kinshasa → Matadi", body.Data[0].LineName)
	assert.Equal(t, int64(78), body.Data[0].OccupancyRate)
	assert.Zero(t, body.Data[1].OccupancyRate)
	assert.Nil(t, repo.scope, "escopo global chega ao repositório como nil")

	w = get(router, "/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upcoming_trips":4`)
}
