package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/livity/realestate-api/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthModule serves GET /api/healthz for load balancers.
type HealthModule struct {
	DB Pinger
}

func NewHealthModule(db Pinger) *HealthModule { return &HealthModule{DB: db} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.check)
}

func (m *HealthModule) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if m.DB == nil || m.DB.Ping(ctx) != nil {
		response.Fail(c, http.StatusServiceUnavailable, "database unavailable", nil)
		return
	}
	response.Respond(c, http.StatusOK, gin.H{"postgres": "ok"}, "healthy", nil)
}
