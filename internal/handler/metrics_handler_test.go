package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/achievement-console/internal/middleware"
	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/service"
)

func newOpsRouter(probes map[string]ReadinessProbe) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(service.NewMetricsService(), probes)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
	r.GET("/admin/metrics", h.Summary)
	return r
}

func TestMetricsHandlerReadyReportsFailingProbe(t *testing.T) {
	r := newOpsRouter(map[string]ReadinessProbe{
		"redis":    func(context.Context) error { return nil },
		"postgres": func(context.Context) error { return errors.New("connection refused") },
	})

	rec := perform(r, http.MethodGet, "/ready", nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsHandlerReadyWithoutProbes(t *testing.T) {
	r := newOpsRouter(nil)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/health", nil).Code)
}

func TestMetricsHandlerExposesPrometheusAndSummary(t *testing.T) {
	r := newOpsRouter(nil)

	rec := perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutines_total")

	rec = perform(r, http.MethodGet, "/admin/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler()

	c, rec := newDashboardContext(http.MethodGet, "/auth/me", &models.JWTClaims{UserID: "u1", FullName: "سارة", Role: models.RoleUser})
	h.Me(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "سارة")

	c, rec = newDashboardContext(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, "not-claims")
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
