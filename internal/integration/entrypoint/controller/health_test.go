package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := func() bool { return true }
	down := func() bool { return false }

	tests := []struct {
		name   string
		probes []HealthProbe
		code   int
		status string
		deps   map[string]string
	}{
		{
			name:   "all up",
			probes: []HealthProbe{{"database", true, up}, {"cache", false, up}},
			code:   http.StatusOK,
			status: "ok",
			deps:   map[string]string{"database": "up", "cache": "up"},
		},
		{
			name:   "cache down degrades",
			probes: []HealthProbe{{"database", true, up}, {"cache", false, down}},
			code:   http.StatusOK,
			status: "degraded",
			deps:   map[string]string{"database": "up", "cache": "down"},
		},
		{
			name:   "database down is unavailable",
			probes: []HealthProbe{{"database", true, down}, {"cache", false, down}},
			code:   http.StatusServiceUnavailable,
			status: "unavailable",
			deps:   map[string]string{"database": "down", "cache": "down"},
		},
		{
			name:   "unconfigured cache",
			probes: []HealthProbe{{"database", true, up}, {"cache", false, nil}},
			code:   http.StatusOK,
			status: "degraded",
			deps:   map[string]string{"database": "up", "cache": "down"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthController(tt.probes...).Check)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.code, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.deps, resp.Dependencies)
			assert.NotEmpty(t, resp.CheckedAt)
		})
	}
}

func TestHealthController_Live(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health/live", NewHealthController(HealthProbe{Name: "database", Critical: true}).Live)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
