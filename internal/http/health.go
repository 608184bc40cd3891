package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akarpov/bookcrud/internal/database"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Catalog string `json:"catalog"`
	Uptime  string `json:"uptime"`
}

type HealthController struct {
	db      *database.Database
	version string
	started time.Time
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
		started: time.Now(),
	}
}

// Status reports whether the catalog store is reachable. Degraded responses
// use 503 so load balancers rotate the instance out.
func (h *HealthController) Status(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Catalog: "reachable",
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	code := http.StatusOK

	switch {
	case h.db == nil:
		response.Catalog = "not configured"
	case h.db.Ping() != nil:
		response.Status = "degraded"
		response.Catalog = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, response)
}
