package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/config"
	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
	pginfra "github.com/livity/realestate-api/internal/infrastructure/postgres"
	"github.com/livity/realestate-api/pkg/helpers"
)

// seed inserts a demo user with one listing. Running it twice reuses the user.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	listings := pginfra.NewListingRepository(pool)

	const (
		email    = "demo@livity.test"
		password = "password123"
	)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, herr := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
		if herr != nil {
			logger.WithError(herr).Fatal("failed to hash password")
		}
		u = &entity.User{Username: "demoUser", Email: email, Phone: "5550100", PasswordHash: hash, AvatarURL: entity.DefaultAvatarURL}
		if err := users.Create(ctx, u); err != nil {
			logger.WithError(err).Fatal("failed to seed user")
		}
	case err != nil:
		logger.WithError(err).Fatal("failed to look up demo user")
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": email, "password": password}).Info("seeded user")

	l := &entity.Listing{
		Title:       "Sunny 2BHK near the park",
		Description: "Corner flat with balcony and covered parking.",
		Price:       4500000,
		Currency:    entity.DefaultCurrency,
		Type:        entity.ListingTypeSale,
		Bedrooms:    2,
		Bathrooms:   2,
		AreaSqFt:    1050,
		Address:     entity.Address{Street: "12 Park Road", City: "Pune", State: "MH", PostalCode: "411001"},
		Image:       entity.Image{URL: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2"},
		OwnerID:     u.ID,
	}
	if err := listings.Create(ctx, l); err != nil {
		logger.WithError(err).Fatal("failed to seed listing")
	}
	logger.WithFields(logrus.Fields{"id": l.ID, "title": l.Title}).Info("seeded listing")
}
