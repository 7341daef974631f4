package application

import (
	"context"
	"io"
	"time"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/pkg/helpers"
)

// TokenCodec issues and verifies session tokens.
type TokenCodec interface {
	Issue(principalID string, ttl time.Duration) (helpers.IssuedToken, error)
	Verify(token string) (*helpers.Claims, error)
}

// Revoker remembers signed-out tokens until they expire.
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// EmailPublisher queues outbound email jobs.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ImageStore hosts uploaded images.
type ImageStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (entity.Image, error)
	Delete(ctx context.Context, publicID string) error
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
