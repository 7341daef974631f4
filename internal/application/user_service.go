package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/domain/entity"
	repo "github.com/livity/realestate-api/internal/domain/repository"
	"github.com/livity/realestate-api/pkg/helpers"
)

// UserService covers principal-scoped operations: favorites and profile.
type UserService struct {
	users    repo.UserRepository
	listings repo.ListingRepository
	images   ImageStore
	logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, listings repo.ListingRepository, images ImageStore, logger *logrus.Logger) *UserService {
	return &UserService{users: users, listings: listings, images: images, logger: logger}
}

// FavoriteToggle is the result of flipping one favorite.
type FavoriteToggle struct {
	Added     bool     `json:"added"`
	Favorites []string `json:"favorites"`
}

// ToggleFavorite adds listingID to the user's favorites, or removes it when
// already present. Repeating the call restores the previous set.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, listingID string) (*FavoriteToggle, error) {
	listingID = strings.TrimSpace(listingID)
	if err := required("listingId", listingID); err != nil {
		return nil, err
	}
	added, ids, err := s.users.ToggleFavorite(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	return &FavoriteToggle{Added: added, Favorites: ids}, nil
}

// ListFavorites resolves the user's favorites into listings, in the order
// they were favorited. Dangling references are skipped.
func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]entity.Listing, error) {
	ids, err := s.users.FavoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.listings.ListByIDs(ctx, ids)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Username  string
	Phone     string
	AvatarURL string
}

// UpdateProfile applies the non-empty fields of in.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Username); v != "" {
		u.Username = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		u.Phone = v
	}
	if v := strings.TrimSpace(in.AvatarURL); v != "" {
		u.AvatarURL = v
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores the image and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file Upload) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	img, err := s.images.Upload(ctx, "avatars/"+userID, file.Filename, file.ContentType, file.Body)
	if err != nil {
		helpers.LogError(s.logger, "avatar upload failed", err, logrus.Fields{"user_id": userID})
		return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	u.AvatarURL = img.URL
	if err := s.users.Update(ctx, u); err != nil {
		s.discardImage(ctx, img)
		return nil, err
	}
	return u, nil
}

func (s *UserService) discardImage(ctx context.Context, img entity.Image) {
	if err := s.images.Delete(context.WithoutCancel(ctx), img.PublicID); err != nil {
		helpers.LogWarn(s.logger, "delete orphaned image failed", err, logrus.Fields{"public_id": img.PublicID})
	}
}
