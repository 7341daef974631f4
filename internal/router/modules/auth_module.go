package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/livity/realestate-api/internal/interface/http"
	"github.com/livity/realestate-api/internal/interface/middleware"
)

// AuthModule serves /auth. Signup and signin are limited per IP.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Gate    gin.HandlerFunc
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, gate gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Gate: gate, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	signinLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auth")
	g.POST("/signup", signupLimiter, m.Handler.Signup)
	g.POST("/signin", signinLimiter, m.Handler.Signin)
	g.POST("/signout", m.Handler.Signout)
	g.GET("/me", m.Gate, m.Handler.Me)
}
