package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/domain/entity"
	repo "github.com/livity/realestate-api/internal/domain/repository"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/mailer"
	"github.com/livity/realestate-api/pkg/mailer/templates"
)

const listingImageFolder = "listings"

// ListingOptions configures a ListingService. Index and Mail are optional.
type ListingOptions struct {
	Index  repo.ListingIndex
	Mail   EmailPublisher
	Brand  templates.Brand
	Logger *logrus.Logger
}

type ListingService struct {
	listings repo.ListingRepository
	images   ImageStore
	opts     ListingOptions
}

func NewListingService(listings repo.ListingRepository, images ImageStore, opts ListingOptions) *ListingService {
	return &ListingService{listings: listings, images: images, opts: opts}
}

type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Currency    string
	Type        entity.ListingType
	Furnished   bool
	Bedrooms    int
	Bathrooms   int
	AreaSqFt    float64
	Address     entity.Address
}

// validate trims in and applies defaults. The first problem found is reported.
func (in *CreateListingInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Address.City = strings.TrimSpace(in.Address.City)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.Type = entity.ListingType(strings.ToLower(strings.TrimSpace(string(in.Type))))

	switch {
	case in.Title == "":
		return invalid("Title required", "title")
	case in.Price <= 0:
		return invalid("Valid price required", "price")
	case in.Address.City == "":
		return invalid("City required", "address.city")
	}

	if in.Type == "" {
		in.Type = entity.ListingTypeSale
	}
	if !in.Type.Valid() {
		return invalid("Type must be sale or rent", "type")
	}
	if in.Currency == "" {
		in.Currency = entity.DefaultCurrency
	}
	if in.Bedrooms <= 0 {
		in.Bedrooms = 1
	}
	if in.Bathrooms <= 0 {
		in.Bathrooms = 1
	}
	if in.AreaSqFt < 0 {
		in.AreaSqFt = 0
	}
	return nil
}

// Create validates, uploads the image, then persists the listing. Nothing is
// persisted when the upload fails, and the image is removed again when the
// insert fails.
func (s *ListingService) Create(ctx context.Context, owner entity.PublicUser, in CreateListingInput, file *Upload) (*entity.Listing, error) {
	if file == nil || file.Body == nil {
		return nil, invalid("Image (field 'image') is required", "image")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	img, err := s.images.Upload(ctx, listingImageFolder, file.Filename, file.ContentType, file.Body)
	if err != nil {
		helpers.LogError(s.opts.Logger, "listing image upload failed", err, logrus.Fields{"user_id": owner.ID})
		return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	l := &entity.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		Type:        in.Type,
		Furnished:   in.Furnished,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		AreaSqFt:    in.AreaSqFt,
		Address:     in.Address,
		Image:       img,
		OwnerID:     owner.ID,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		if derr := s.images.Delete(context.WithoutCancel(ctx), img.PublicID); derr != nil {
			helpers.LogWarn(s.opts.Logger, "delete orphaned image failed", derr, logrus.Fields{"public_id": img.PublicID})
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}

	if s.opts.Index != nil {
		if err := s.opts.Index.Index(ctx, l); err != nil {
			helpers.LogWarn(s.opts.Logger, "index listing failed", err, logrus.Fields{"listing_id": l.ID})
		}
	}
	enqueueEmail(ctx, s.opts.Mail, s.opts.Logger, mailer.EmailJob{
		To:       owner.Email,
		Template: templates.ListingPublished,
		Data: templates.NewListingPublishedData(s.opts.Brand, owner.Username, owner.Email,
			templates.WithListing(s.opts.Brand, l.ID, l.Title, l.Address.City, l.Price, l.Currency)),
	})
	return l, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*entity.Listing, error) {
	return s.listings.GetByID(ctx, strings.TrimSpace(id))
}

// Search queries the index when one is configured and loads the hits from
// the store. Any index failure falls back to the store's own search.
func (s *ListingService) Search(ctx context.Context, f entity.ListingFilter) ([]entity.Listing, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, invalid("Type must be sale or rent", "type")
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, invalid("minPrice must not exceed maxPrice", "minPrice", "maxPrice")
	}

	if s.opts.Index != nil {
		ids, err := s.opts.Index.Search(ctx, f)
		if err == nil {
			return s.listings.ListByIDs(ctx, ids)
		}
		helpers.LogWarn(s.opts.Logger, "index search failed, using database", err, nil)
	}
	return s.listings.Search(ctx, f)
}
