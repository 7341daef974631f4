package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
)

const selectUser = `
	SELECT u.id::text, u.username, u.email, u.phone, u.password_hash, u.avatar_url,
	       ARRAY(SELECT f.listing_id::text FROM user_favorites f WHERE f.user_id = u.id ORDER BY f.created_at, f.listing_id),
	       u.created_at, u.updated_at
	FROM users u
`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, phone, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at, updated_at
	`, u.Username, normalizeEmail(u.Email), u.Phone, u.PasswordHash, u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translate(err, "insert user", repository.ErrNotFound)
	}
	u.Email = normalizeEmail(u.Email)
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", selectUser+`WHERE u.id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", selectUser+`WHERE u.email = $1`, normalizeEmail(email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "get user by username", selectUser+`WHERE u.username = $1`, strings.TrimSpace(username))
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.AvatarURL,
		&u.Favorites, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err, op, repository.ErrNotFound)
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, phone = $3, password_hash = $4, avatar_url = $5, updated_at = $6
		WHERE id = $7
	`, u.Username, normalizeEmail(u.Email), u.Phone, u.PasswordHash, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err, "update user", repository.ErrNotFound)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ToggleFavorite locks the user row so concurrent toggles by the same user
// are applied one after another.
func (r *UserRepository) ToggleFavorite(ctx context.Context, userID, listingID string) (bool, []string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("begin toggle favorite: %w", err)
	}

	added, ids, err := toggleFavorite(ctx, tx, userID, listingID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return false, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, nil, fmt.Errorf("commit toggle favorite: %w", err)
	}
	return added, ids, nil
}

func toggleFavorite(ctx context.Context, tx pgx.Tx, userID, listingID string) (bool, []string, error) {
	var locked string
	if err := tx.QueryRow(ctx, `SELECT id::text FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
		return false, nil, translate(err, "lock user", repository.ErrNotFound)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM user_favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return false, nil, translate(err, "remove favorite", repository.ErrListingNotFound)
	}

	added := tag.RowsAffected() == 0
	if added {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_favorites (user_id, listing_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, listingID); err != nil {
			if isForeignKeyViolation(err) {
				return false, nil, repository.ErrListingNotFound
			}
			return false, nil, translate(err, "add favorite", repository.ErrListingNotFound)
		}
	}

	ids, err := favoriteIDs(ctx, tx, userID)
	if err != nil {
		return false, nil, err
	}
	return added, ids, nil
}

func (r *UserRepository) FavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	return favoriteIDs(ctx, r.db, userID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func favoriteIDs(ctx context.Context, q querier, userID string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT listing_id::text FROM user_favorites
		WHERE user_id = $1
		ORDER BY created_at, listing_id
	`, userID)
	if err != nil {
		return nil, translate(err, "list favorites", repository.ErrNotFound)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ repository.UserRepository = (*UserRepository)(nil)
