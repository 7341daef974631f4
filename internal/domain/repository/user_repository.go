package repository

import (
	"context"
	"errors"

	"github.com/livity/realestate-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("already exists")
	// ErrListingNotFound is returned when a favorite references an unknown listing.
	ErrListingNotFound = errors.New("listing not found")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// ToggleFavorite removes listingID from the user's favorites when present,
	// otherwise adds it. It returns whether it was added and the resulting ids.
	ToggleFavorite(ctx context.Context, userID, listingID string) (bool, []string, error)
	FavoriteIDs(ctx context.Context, userID string) ([]string, error)
}
