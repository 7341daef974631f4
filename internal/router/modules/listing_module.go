package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/livity/realestate-api/internal/interface/http"
	"github.com/livity/realestate-api/internal/interface/middleware"
)

// ListingModule serves /listings. Reads are public, creation needs a session.
type ListingModule struct {
	Handler *handlers.ListingHandler
	Gate    gin.HandlerFunc
	Redis   *redis.Client
}

func NewListingModule(h *handlers.ListingHandler, gate gin.HandlerFunc, rdb *redis.Client) *ListingModule {
	return &ListingModule{Handler: h, Gate: gate, Redis: rdb}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/listings")

	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil)
	g.GET("", readLimiter, m.Handler.Search)
	g.GET("/:id", readLimiter, m.Handler.Get)

	g.POST("/create",
		m.Gate,
		middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.Create)
}
