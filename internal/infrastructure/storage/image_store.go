package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/pkg/helpers"
)

// ErrNotConfigured is returned when no bucket is available.
var ErrNotConfigured = errors.New("image storage not configured")

// GCSImageStore keeps images in a single Cloud Storage bucket. The public id
// of an image is its object path.
type GCSImageStore struct {
	client   *gcs.Client
	bucket   string
	maxBytes int64
}

func NewGCSImageStore(client *gcs.Client, bucket string, maxBytes int64) *GCSImageStore {
	return &GCSImageStore{client: client, bucket: bucket, maxBytes: maxBytes}
}

func (s *GCSImageStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (entity.Image, error) {
	if s == nil || s.client == nil || s.bucket == "" {
		return entity.Image{}, ErrNotConfigured
	}
	objectPath := ObjectPath(folder, filename)
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r, s.maxBytes)
	if err != nil {
		return entity.Image{}, err
	}
	return entity.Image{URL: url, PublicID: objectPath}, nil
}

func (s *GCSImageStore) Delete(ctx context.Context, publicID string) error {
	if s == nil || s.client == nil || s.bucket == "" {
		return ErrNotConfigured
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, publicID)
}

// ObjectPath names a new object under folder, keeping the lower-cased
// extension of the uploaded file.
func ObjectPath(folder, filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, `\`, "/")))
	if len(ext) > 8 || strings.ContainsAny(ext, " ?#") {
		ext = ""
	}
	return path.Join(strings.Trim(folder, "/"), uuid.NewString()+ext)
}
