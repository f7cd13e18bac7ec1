package storage

import (
	"context"
	"io"
)

// Uploader stores and serves public binary assets (club logos).
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
