package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/domain/repository"
)

var listingColumns = []string{
	"id", "title", "description", "price", "currency", "type", "furnished", "bedrooms", "bathrooms", "area_sqft",
	"street", "city", "state", "postal_code", "image_url", "image_public_id", "owner_id", "created_at", "updated_at",
}

func listingRow(rows *pgxmock.Rows, id, title, city string) *pgxmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(id, title, "", 1500000.0, "INR", "sale", false, 2, 1, 900.0,
		"", city, "", "", "https://img/"+id, "listings/"+id, "u1", now, now)
}

func TestListingRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	l := &entity.Listing{
		Title: "Sea view flat", Price: 2500000, Currency: "INR", Type: entity.ListingTypeSale,
		Bedrooms: 2, Bathrooms: 2, AreaSqFt: 1100,
		Address: entity.Address{City: "Mumbai"},
		Image:   entity.Image{URL: "https://img/x", PublicID: "listings/x"},
		OwnerID: "u1",
	}

	mock.ExpectQuery(`INSERT INTO listings`).
		WithArgs("Sea view flat", "", 2500000.0, "INR", "sale", false, 2, 2, 1100.0,
			"", "Mumbai", "", "", "https://img/x", "listings/x", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("l1", now, now))

	require.NoError(t, NewListingRepository(mock).Create(context.Background(), l))
	assert.Equal(t, "l1", l.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM listings WHERE id = \$1`).WithArgs("l1").
			WillReturnRows(listingRow(pgxmock.NewRows(listingColumns), "l1", "Flat", "Pune"))

		l, err := NewListingRepository(mock).GetByID(context.Background(), "l1")
		require.NoError(t, err)
		assert.Equal(t, entity.ListingTypeSale, l.Type)
		assert.Equal(t, "Pune", l.Address.City)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM listings WHERE id = \$1`).WithArgs("l9").WillReturnError(pgx.ErrNoRows)

		_, err = NewListingRepository(mock).GetByID(context.Background(), "l9")
		assert.ErrorIs(t, err, repository.ErrListingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListingRepository_ListByIDsKeepsOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(listingColumns)
	listingRow(rows, "l1", "First", "Pune")
	listingRow(rows, "l2", "Second", "Goa")
	mock.ExpectQuery(`ANY`).WithArgs([]string{"l2", "gone", "l1"}).WillReturnRows(rows)

	got, err := NewListingRepository(mock).ListByIDs(context.Background(), []string{"l2", "gone", "l1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "l2", got[0].ID)
	assert.Equal(t, "l1", got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_ListByIDsEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	got, err := NewListingRepository(mock).ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_Search(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`ILIKE \$1 .* lower\(city\) = lower\(\$2\) AND type = \$3 AND price >= \$4 AND price <= \$5 ORDER BY created_at DESC, id LIMIT \$6 OFFSET \$7`).
		WithArgs(`%50\%%`, "Goa", "rent", 1000.0, 5000.0, 10, 0).
		WillReturnRows(listingRow(pgxmock.NewRows(listingColumns), "l1", "50% off", "Goa"))

	got, err := NewListingRepository(mock).Search(context.Background(), entity.ListingFilter{
		Search: "50%", City: "Goa", Type: entity.ListingTypeRent, MinPrice: 1000, MaxPrice: 5000, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingConditions(t *testing.T) {
	where, args := listingConditions(entity.ListingFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	limit, offset := pageOf(entity.ListingFilter{Limit: 1000, Offset: -3})
	assert.Equal(t, maxSearchLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = pageOf(entity.ListingFilter{})
	assert.Equal(t, defaultSearchLimit, limit)
}
