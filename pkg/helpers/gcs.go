package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// ErrObjectTooLarge is returned when an upload exceeds its size limit.
var ErrObjectTooLarge = errors.New("object exceeds size limit")

// UploadObject streams r into bucket/objectPath and returns the object's public URL.
// At most limit bytes are accepted when limit > 0.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader, limit int64) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // single request for small files

	if err := writeObject(wc, cancel, r, limit); err != nil {
		return "", err
	}
	return PublicURL(bucket, objectPath), nil
}

// writeObject copies r into w and closes it. Closing a GCS writer commits the
// object, so on failure abort cancels the upload and Close is never called.
func writeObject(w io.WriteCloser, abort context.CancelFunc, r io.Reader, limit int64) error {
	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}
	n, err := io.Copy(w, src)
	if err == nil && limit > 0 && n > limit {
		err = fmt.Errorf("%w: limit is %d bytes", ErrObjectTooLarge, limit)
	}
	if err != nil {
		abort()
		return err
	}
	return w.Close()
}

// DeleteObject removes bucket/objectPath. A missing object is not an error.
func DeleteObject(ctx context.Context, client *storage.Client, bucket, objectPath string) error {
	err := client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// PublicURL builds a public URL for an object (assuming public read access)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
