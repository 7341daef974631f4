package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/livity/realestate-api/internal/application"
)

const imageField = "image"

// multipart overhead allowed on top of the file itself
const formSlack = 1 << 20

// openImage returns the uploaded image in field "image", or nil when the
// request carries none. Oversized and non-image files are validation errors.
// The caller closes the returned file.
func openImage(c *gin.Context, maxBytes int64) (*application.Upload, multipart.File, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formSlack)

	fh, err := c.FormFile(imageField)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, nil, errTooLarge
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil, nil
	case err != nil:
		return nil, nil, &application.ValidationError{Message: "invalid multipart form", Fields: []string{imageField}}
	}

	if fh.Size > maxBytes {
		return nil, nil, errTooLarge
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return nil, nil, &application.ValidationError{Message: "Only image uploads are allowed", Fields: []string{imageField}}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}
	return &application.Upload{Filename: fh.Filename, ContentType: ct, Body: f}, f, nil
}

var errTooLarge = &application.ValidationError{Message: "Image exceeds the upload limit", Fields: []string{imageField}}
