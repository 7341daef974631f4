package router

import (
	"github.com/gin-gonic/gin"

	"github.com/livity/realestate-api/internal/application"
	"github.com/livity/realestate-api/internal/container"
	pginfra "github.com/livity/realestate-api/internal/infrastructure/postgres"
	handlers "github.com/livity/realestate-api/internal/interface/http"
	"github.com/livity/realestate-api/internal/interface/middleware"
	"github.com/livity/realestate-api/internal/router/modules"
)

type moduleDeps struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Listing *handlers.ListingHandler
	Gate    gin.HandlerFunc
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	listings := pginfra.NewListingRepository(pool)
	images := container.GetImageStore()
	mail := container.GetMailPublisher()
	brand := container.GetBrand()
	denylist := container.GetDenylist()

	authSvc := application.NewAuthService(users, container.GetHasher(), container.GetJWT(), application.AuthOptions{
		TTL:               cfg.JWTTTL,
		UnifySigninErrors: cfg.UnifySigninErrors,
		Denylist:          denylist,
		Mail:              mail,
		Brand:             brand,
		Logger:            logger,
	})
	userSvc := application.NewUserService(users, listings, images, logger)
	listingSvc := application.NewListingService(listings, images, application.ListingOptions{
		Index:  container.GetListingIndex(),
		Mail:   mail,
		Brand:  brand,
		Logger: logger,
	})

	// a nil Revoker must reach the gate as a nil interface
	var revoked middleware.RevocationChecker
	if denylist != nil {
		revoked = denylist
	}

	return moduleDeps{
		Auth:    handlers.NewAuthHandler(authSvc, container.GetCookies(), logger),
		User:    handlers.NewUserHandler(userSvc, logger, cfg.MaxUploadBytes),
		Listing: handlers.NewListingHandler(listingSvc, logger, cfg.MaxUploadBytes),
		Gate:    middleware.SessionGate(container.GetJWT(), users, revoked, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	rdb := container.GetRedis()

	r.Add(modules.NewHealthModule(container.GetPGPool()))
	r.Add(modules.NewAuthModule(deps.Auth, deps.Gate, rdb))
	r.Add(modules.NewUserModule(deps.User, deps.Gate, rdb))
	r.Add(modules.NewListingModule(deps.Listing, deps.Gate, rdb))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
