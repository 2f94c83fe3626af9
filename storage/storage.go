package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Sentinel errors returned by backends.
var (
	ErrNotFound           = errors.New("storage: object not found")
	ErrPresignUnsupported = errors.New("storage: presigned uploads not supported by this provider")
	ErrTooLarge           = errors.New("storage: object exceeds size limit")
)

// Storage defines the object operations the service needs.
type Storage interface {
	// Upload writes data from reader to key.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Download returns a reader for the object at key. Missing objects
	// yield an error wrapping ErrNotFound. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object at key. Returns nil if it does not exist.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// PresignedUploader is implemented by backends that can issue time-limited
// URLs for clients to PUT an object directly.
type PresignedUploader interface {
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
}
