package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	tests := []struct {
		folder, filename, prefix, ext string
	}{
		{"listings", "house.JPG", "listings/", ".jpg"},
		{"/avatars/u1/", "me.png", "avatars/u1/", ".png"},
		{"listings", `C:\Users\a\pic.webp`, "listings/", ".webp"},
		{"listings", "noext", "listings/", ""},
		{"listings", "weird.extension-too-long", "listings/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p := ObjectPath(tt.folder, tt.filename)
			require.True(t, strings.HasPrefix(p, tt.prefix), p)
			assert.True(t, strings.HasSuffix(p, tt.ext), p)
			// uuid (36) between prefix and extension
			assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(p, tt.prefix), tt.ext), 36)
		})
	}

	assert.NotEqual(t, ObjectPath("listings", "a.png"), ObjectPath("listings", "a.png"))
}

func TestGCSImageStoreNotConfigured(t *testing.T) {
	s := NewGCSImageStore(nil, "", 0)

	_, err := s.Upload(context.Background(), "listings", "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, s.Delete(context.Background(), "listings/a.png"), ErrNotConfigured)
}
