package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing immutable sample blobs.
type Store interface {
	// List returns the names of all blobs in the store.
	// No order is guaranteed; callers that need deterministic indexing
	// must sort the result themselves.
	List(ctx context.Context) ([]string, error)

	// Open opens a blob for reading. The caller owns the returned
	// ReadCloser and must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
