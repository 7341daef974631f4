package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100
)

const selectListing = `
	SELECT id::text, title, description, price, currency, type, furnished, bedrooms, bathrooms, area_sqft,
	       street, city, state, postal_code, image_url, image_public_id, owner_id::text, created_at, updated_at
	FROM listings
`

type ListingRepository struct {
	db DBTX
}

func NewListingRepository(db DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO listings (title, description, price, currency, type, furnished, bedrooms, bathrooms, area_sqft,
		                      street, city, state, postal_code, image_url, image_public_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id::text, created_at, updated_at
	`, l.Title, l.Description, l.Price, l.Currency, string(l.Type), l.Furnished, l.Bedrooms, l.Bathrooms, l.AreaSqFt,
		l.Address.Street, l.Address.City, l.Address.State, l.Address.PostalCode, l.Image.URL, l.Image.PublicID, l.OwnerID)

	if err := row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return translate(err, "insert listing", repository.ErrNotFound)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, selectListing+`WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "get listing", repository.ErrListingNotFound)
	}
	return l, nil
}

func (r *ListingRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.Listing, error) {
	if len(ids) == 0 {
		return []entity.Listing{}, nil
	}
	found, err := r.query(ctx, "list listings by id", selectListing+`WHERE id = ANY($1::text[]::uuid[])`, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]entity.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	out := make([]entity.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *ListingRepository) Search(ctx context.Context, f entity.ListingFilter) ([]entity.Listing, error) {
	where, args := listingConditions(f)
	limit, offset := pageOf(f)
	args = append(args, limit, offset)

	q := selectListing + where + fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.query(ctx, "search listings", q, args...)
}

// listingConditions builds the WHERE clause for f. It starts with a space
// so it can be appended to selectListing directly.
func listingConditions(f entity.ListingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := next("%" + escapeLike(s) + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR city ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if c := strings.TrimSpace(f.City); c != "" {
		conds = append(conds, "lower(city) = lower("+next(c)+")")
	}
	if f.Type != "" {
		conds = append(conds, "type = "+next(string(f.Type)))
	}
	if f.MinPrice > 0 {
		conds = append(conds, "price >= "+next(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "price <= "+next(f.MaxPrice))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func pageOf(f entity.ListingFilter) (int, int) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ListingRepository) query(ctx context.Context, op, q string, args ...any) ([]entity.Listing, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err, op, repository.ErrListingNotFound)
	}
	defer rows.Close()

	out := []entity.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	l := &entity.Listing{}
	var typ string
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.Currency, &typ, &l.Furnished,
		&l.Bedrooms, &l.Bathrooms, &l.AreaSqFt,
		&l.Address.Street, &l.Address.City, &l.Address.State, &l.Address.PostalCode,
		&l.Image.URL, &l.Image.PublicID, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Type = entity.ListingType(typ)
	return l, nil
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
