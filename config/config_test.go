package config

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("APP_ENV", "")

		cfg := Load()

		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "s3cret", cfg.JWTSecret)
		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
		assert.False(t, cfg.CookieSecure)
		assert.False(t, cfg.UnifySigninErrors)
		assert.False(t, cfg.TrustProxy)
		assert.Equal(t, http.SameSiteLaxMode, cfg.CookieSameSite())
		require.NoError(t, cfg.Validate())
	})

	t.Run("production cookies", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("APP_ENV", "production")

		cfg := Load()

		assert.True(t, cfg.CookieSecure)
		assert.Equal(t, http.SameSiteNoneMode, cfg.CookieSameSite())
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		t.Setenv("JWT_TTL", "forever")
		t.Setenv("BCRYPT_COST", "high")
		t.Setenv("REDIS_ENABLED", "maybe")

		cfg := Load()

		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.True(t, cfg.RedisEnabled)
	})

	t.Run("trust proxy", func(t *testing.T) {
		t.Setenv("TRUST_PROXY", "true")
		assert.True(t, Load().TrustProxy)
	})

	t.Run("lists are split and trimmed", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
		t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200,http://es2:9200")

		cfg := Load()

		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
		assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{JWTSecret: "s3cret", JWTTTL: time.Hour, BcryptCost: 10, MaxUploadBytes: 1024}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET is required"},
		{name: "blank secret", mutate: func(c *Config) { c.JWTSecret = "   " }, wantErr: "JWT_SECRET is required"},
		{name: "zero ttl", mutate: func(c *Config) { c.JWTTTL = 0 }, wantErr: "JWT_TTL must be positive"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }, wantErr: "BCRYPT_COST"},
		{name: "cost too high", mutate: func(c *Config) { c.BcryptCost = 99 }, wantErr: "BCRYPT_COST"},
		{name: "upload limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: "MAX_UPLOAD_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "livity", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/livity?sslmode=disable", cfg.PostgresDSN())

	cfg.DBUser, cfg.DBPassword = "app@prod", "p@ss:w/rd?#%"
	dsn := cfg.PostgresDSN()
	parsed, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/livity", parsed.Path)
	assert.Equal(t, "app@prod", parsed.User.Username())
	pw, _ := parsed.User.Password()
	assert.Equal(t, "p@ss:w/rd?#%", pw)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}
