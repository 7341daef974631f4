package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/livity/realestate-api/internal/domain/repository"
)

// conflictFields maps unique constraint names to the field they guard.
var conflictFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

// translate maps driver errors onto repository sentinels. notFound is used
// for missing rows and malformed ids.
func translate(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if field, ok := conflictFields[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%s %w", field, repository.ErrConflict)
			}
			return fmt.Errorf("%w (%s)", repository.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.InvalidTextRepresentation:
			return notFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
