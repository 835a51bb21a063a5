package storage

import (
	"context"
	"io"
)

// BlobStore is the durable content store used by the photo pipeline.
// Put writes the object under key and returns a dereferenceable URL.
type BlobStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}
