package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/livity/realestate-api/internal/interface/http"
	"github.com/livity/realestate-api/internal/interface/middleware"
)

// UserModule serves the signed-in user's favorites and profile under /users.
// Every route is behind the session gate.
type UserModule struct {
	Handler *handlers.UserHandler
	Gate    gin.HandlerFunc
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, gate gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Gate: gate, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(m.Gate)
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/favorites/:listingId", m.Handler.ToggleFavorite)
		auth.GET("/favorites", m.Handler.ListFavorites)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/avatar",
			middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.UploadAvatar)
	}
}
