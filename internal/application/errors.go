package application

import (
	"errors"
	"strings"

	"github.com/livity/realestate-api/internal/domain/repository"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrImageUpload       = errors.New("image upload failed")

	// Storage sentinels pass through unchanged.
	ErrConflict        = repository.ErrConflict
	ErrNotFound        = repository.ErrNotFound
	ErrListingNotFound = repository.ErrListingNotFound
)

// ValidationError is a user-correctable input problem. It matches ErrValidation.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string, fields ...string) error {
	return &ValidationError{Message: msg, Fields: fields}
}

// required returns a ValidationError naming every empty field, or nil.
func required(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
