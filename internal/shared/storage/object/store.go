package object

import (
	"context"
	"errors"
	"io"
	"time"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// ErrPresignUnsupported is returned by backends that cannot hand out signed URLs.
var ErrPresignUnsupported = errors.New("presigned urls are not supported by this backend")

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Put stores r under key and returns the object's URL and byte size.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (url string, size int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Backend() string
}
