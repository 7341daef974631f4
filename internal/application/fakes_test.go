package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/livity/realestate-api/internal/domain/entity"
	repo "github.com/livity/realestate-api/internal/domain/repository"
)

type memUsers struct {
	mu       sync.Mutex
	byID     map[string]*entity.User
	listings *memListings
	seq      int
	err      error // returned by every call when set
}

func newMemUsers(listings *memListings) *memUsers {
	return &memUsers{byID: map[string]*entity.User{}, listings: listings}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, x := range m.byID {
		if x.Username == u.Username {
			return fmt.Errorf("username %w", repo.ErrConflict)
		}
		if x.Email == u.Email {
			return fmt.Errorf("email %w", repo.ErrConflict)
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
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if match(u) {
			cp := *u
			cp.Favorites = slices.Clone(u.Favorites)
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
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
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[u.ID]; !ok {
		return repo.ErrNotFound
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
		return false, nil, repo.ErrNotFound
	}
	if i := slices.Index(u.Favorites, listingID); i >= 0 {
		u.Favorites = slices.Delete(u.Favorites, i, i+1)
		return false, slices.Clone(u.Favorites), nil
	}
	if m.listings != nil && !m.listings.has(listingID) {
		return false, nil, repo.ErrListingNotFound
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

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memListings struct {
	mu        sync.Mutex
	rows      []entity.Listing
	createErr error
	searched  bool
}

func (m *memListings) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.rows {
		if l.ID == id {
			return true
		}
	}
	return false
}

func (m *memListings) Create(_ context.Context, l *entity.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
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
	return nil, repo.ErrListingNotFound
}

func (m *memListings) ListByIDs(_ context.Context, ids []string) ([]entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Listing{}
	for _, id := range ids {
		for _, l := range m.rows {
			if l.ID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (m *memListings) Search(_ context.Context, f entity.ListingFilter) ([]entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searched = true
	out := []entity.Listing{}
	for _, l := range m.rows {
		if f.City != "" && !strings.EqualFold(l.Address.City, f.City) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeIndex struct {
	ids     []string
	err     error
	indexed []string
}

func (f *fakeIndex) Index(_ context.Context, l *entity.Listing) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, l.ID)
	return nil
}

func (f *fakeIndex) Search(context.Context, entity.ListingFilter) ([]string, error) {
	return f.ids, f.err
}

type fakeImages struct {
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeImages) Upload(_ context.Context, folder, filename, _ string, r io.Reader) (entity.Image, error) {
	if f.uploadErr != nil {
		return entity.Image{}, f.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return entity.Image{}, err
	}
	id := folder + "/" + filename
	f.uploaded = append(f.uploaded, id)
	return entity.Image{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (f *fakeImages) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	err  error
	jobs []any
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeRevoker struct {
	revoked map[string]time.Time
	err     error
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]time.Time{}
	}
	f.revoked[jti] = until
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, f.err
}

var errBoom = errors.New("boom")
