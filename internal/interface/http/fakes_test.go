package handlers

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
)

type memUsers struct {
	mu       sync.Mutex
	byID     map[string]*entity.User
	listings *memListings
	seq      int
}

func newMemUsers(listings *memListings) *memUsers {
	return &memUsers{byID: map[string]*entity.User{}, listings: listings}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Username == u.Username {
			return fmt.Errorf("username %w", repository.ErrConflict)
		}
		if x.Email == u.Email {
			return fmt.Errorf("email %w", repository.ErrConflict)
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("u%d", m.seq)
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if match(u) {
			cp := *u
			cp.Favorites = slices.Clone(u.Favorites)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username })
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) ToggleFavorite(_ context.Context, userID, listingID string) (bool, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return false, nil, repository.ErrNotFound
	}
	if i := slices.Index(u.Favorites, listingID); i >= 0 {
		u.Favorites = slices.Delete(u.Favorites, i, i+1)
		return false, slices.Clone(u.Favorites), nil
	}
	if !m.listings.has(listingID) {
		return false, nil, repository.ErrListingNotFound
	}
	u.Favorites = append(u.Favorites, listingID)
	return true, slices.Clone(u.Favorites), nil
}

func (m *memUsers) FavoriteIDs(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return []string{}, nil
	}
	return slices.Clone(u.Favorites), nil
}

type memListings struct {
	mu   sync.Mutex
	rows []entity.Listing
}

func (m *memListings) add(l entity.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, l)
}

func (m *memListings) has(id string) bool {
	_, err := m.GetByID(context.Background(), id)
	return err == nil
}

func (m *memListings) Create(_ context.Context, l *entity.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = fmt.Sprintf("l%d", len(m.rows)+1)
	l.CreatedAt, l.UpdatedAt = time.Now(), time.Now()
	m.rows = append(m.rows, *l)
	return nil
}

func (m *memListings) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.rows {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, repository.ErrListingNotFound
}

func (m *memListings) ListByIDs(ctx context.Context, ids []string) ([]entity.Listing, error) {
	out := []entity.Listing{}
	for _, id := range ids {
		if l, err := m.GetByID(ctx, id); err == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memListings) Search(_ context.Context, f entity.ListingFilter) ([]entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Listing{}
	for _, l := range m.rows {
		if f.City != "" && !strings.EqualFold(l.Address.City, f.City) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeImages struct {
	mu       sync.Mutex
	uploaded []string
}

func (f *fakeImages) Upload(_ context.Context, folder, filename, _ string, r io.Reader) (entity.Image, error) {
	if _, err := io.ReadAll(r); err != nil {
		return entity.Image{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := folder + "/" + filename
	f.uploaded = append(f.uploaded, id)
	return entity.Image{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (f *fakeImages) Delete(context.Context, string) error { return nil }
