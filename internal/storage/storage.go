package storage

import (
	"context"
	"io"
)

// Uploader stores product images and returns a public URL for each
// uploaded object.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}
