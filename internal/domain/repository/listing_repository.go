package repository

import (
	"context"

	"github.com/livity/realestate-api/internal/domain/entity"
)

// ListingRepository is the persistent listing store.
type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	// ListByIDs returns the listings that exist, in the order of ids.
	ListByIDs(ctx context.Context, ids []string) ([]entity.Listing, error)
	Search(ctx context.Context, f entity.ListingFilter) ([]entity.Listing, error)
}

// ListingIndex is a full-text index over listings. It returns matching ids only;
// rows are always loaded from the ListingRepository.
type ListingIndex interface {
	Index(ctx context.Context, l *entity.Listing) error
	Search(ctx context.Context, f entity.ListingFilter) ([]string, error)
}
