package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/config"
	"github.com/livity/realestate-api/internal/application"
	"github.com/livity/realestate-api/internal/domain/repository"
	"github.com/livity/realestate-api/internal/infrastructure/redisstore"
	"github.com/livity/realestate-api/internal/infrastructure/search"
	imagestore "github.com/livity/realestate-api/internal/infrastructure/storage"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/mailer/templates"
)

// app-level container to share constructed components across packages.
// Optional backends (redis, gcs, elasticsearch, rabbitmq) may stay unset;
// the port getters then return nil interfaces and callers skip the feature.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher

	jwtManager *helpers.JWTManager
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetGCS(s *storage.Client)                { gcsClient = s }
func GetGCS() *storage.Client                 { return gcsClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func GetJWT() *helpers.JWTManager             { return jwtManager }

func GetHasher() *helpers.BcryptHasher {
	return helpers.NewBcryptHasher(cfg.BcryptCost)
}

func GetCookies() *helpers.Manager {
	return helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure, cfg.CookieSameSite())
}

// GetDenylist is nil without redis.
func GetDenylist() application.Revoker {
	if redisClient == nil {
		return nil
	}
	return redisstore.NewDenylist(redisClient)
}

// GetImageStore always returns a store; without a GCS client or bucket its
// uploads fail with storage.ErrNotConfigured.
func GetImageStore() application.ImageStore {
	return imagestore.NewGCSImageStore(gcsClient, cfg.GCSBucket, cfg.MaxUploadBytes)
}

// GetListingIndex is nil unless Elasticsearch is connected.
func GetListingIndex() repository.ListingIndex {
	if esClient == nil {
		return nil
	}
	return search.NewListingIndex(esClient, cfg.ESListingsIndex)
}

// GetMailPublisher is nil when mail is switched off or RabbitMQ is absent.
func GetMailPublisher() application.EmailPublisher {
	if rabbitPub == nil || !cfg.MailSendEnabled {
		return nil
	}
	return rabbitPub
}

func GetBrand() templates.Brand {
	return templates.Brand{
		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
		ListingURL:  cfg.ListingURL,
	}
}
