package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultProfilingConfig(t *testing.T) {
	cfg := DefaultProfilingConfig()

	assert.True(t, cfg.Enabled)
	assert.Contains(t, cfg.SkipPaths, "/health")
}

func profiledRouter(cfg ProfilingConfig, seen map[string]string) *gin.Engine {
	router := gin.New()
	router.Use(ProfilingWithConfig(cfg))
	capture := func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(key, value string) bool {
			seen[key] = value
			return true
		})
		c.Status(http.StatusOK)
	}
	router.GET("/health", capture)
	router.GET("/api/v1/articles/:code/availability", capture)
	return router
}

func TestProfilingMiddleware_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	seen := map[string]string{}

	w := httptest.NewRecorder()
	profiledRouter(ProfilingConfig{Enabled: false}, seen).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles/A1/availability", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, seen)
}

func TestProfilingMiddleware_ExtractsLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	seen := map[string]string{}

	w := httptest.NewRecorder()
	profiledRouter(DefaultProfilingConfig(), seen).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles/A1/availability", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{
		ProfilingLabelMethod:     http.MethodGet,
		ProfilingLabelRoute:      "/api/v1/articles/:code/availability",
		ProfilingLabelController: "articles",
	}, seen)
}

func TestProfilingMiddleware_SkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	seen := map[string]string{}

	w := httptest.NewRecorder()
	profiledRouter(DefaultProfilingConfig(), seen).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, seen)
}

func TestExtractControllerFromRoute(t *testing.T) {
	tests := []struct {
		route    string
		expected string
	}{
		{"/api/v1/watchlist/:position", "watchlist"},
		{"/api/v1/articles/:code/availability", "articles"},
		{"/api/v2/planning/simulate", "planning"},
		{"/simulate_order", "simulate_order"},
		{"/api/v1/:id", ""},
		{"/files/*path", "files"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractControllerFromRoute(tt.route))
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	tests := []struct {
		segment  string
		expected bool
	}{
		{"v1", true},
		{"V2", true},
		{"v10", true},
		{"v", false},
		{"va", false},
		{"api", false},
		{"1", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.expected, isVersionSegment(tt.segment))
		})
	}
}
