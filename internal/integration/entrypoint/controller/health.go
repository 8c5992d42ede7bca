// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthProbe checks one backing service. A critical probe that fails makes
// the API report itself unavailable; a nil Check counts as down.
type HealthProbe struct {
	Name     string
	Critical bool
	Check    func() bool
}

// HealthController serves liveness and readiness endpoints.
type HealthController struct {
	probes []HealthProbe
}

// HealthResponse is the readiness report.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	CheckedAt    string            `json:"checked_at"`
}

func NewHealthController(probes ...HealthProbe) *HealthController {
	return &HealthController{probes: probes}
}

// Live handles GET /health/live. It never touches a dependency.
func (h *HealthController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Check handles GET /health. The ledger cannot serve without its database;
// losing Redis only disables request replay.
func (h *HealthController) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:       "ok",
		Dependencies: make(map[string]string, len(h.probes)),
		CheckedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK

	for _, p := range h.probes {
		if p.Check != nil && p.Check() {
			resp.Dependencies[p.Name] = "up"
			continue
		}
		resp.Dependencies[p.Name] = "down"
		if p.Critical {
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		} else if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	}

	c.JSON(code, resp)
}
