package service

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is the shared not-found signal for both backends.
// The local backend also returns it for rejected path traversal attempts
// so the caller never learns which of the two happened.
var ErrObjectNotFound = errors.New("object not found")

// ErrPresignUnsupported is returned by backends that cannot mint
// presigned URLs (the local filesystem backend, always).
var ErrPresignUnsupported = errors.New("presigned URLs not supported by this backend")

type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStore is the uniform contract over the local filesystem and S3
// backends. Locations are storage-relative, slash-separated keys that
// are generated per upload and never reused.
type ObjectStore interface {
	Get(ctx context.Context, location string) (io.ReadCloser, *ObjectInfo, error)
	// Put stores the stream and returns the authoritative stored size.
	Put(ctx context.Context, r io.Reader, location, contentType string) (int64, error)
	Delete(ctx context.Context, location string) error
	PresignedURL(ctx context.Context, location string, ttl time.Duration) (string, error)
	// Walk visits every stored object; used by the reconciliation sweep.
	Walk(ctx context.Context, fn func(location string, modTime time.Time) error) error
}
