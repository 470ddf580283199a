package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DecompressingStore wraps a Store and transparently decompresses blobs on
// read, keyed by file extension: ".zst" (zstandard), ".lz4" and ".gz".
// Blobs with any other extension pass through unchanged.
//
// Listing is not altered: names keep their stored extension so that sort
// order stays deterministic with respect to what is actually on disk.
type DecompressingStore struct {
	inner Store
}

// NewDecompressingStore wraps the given store with extension-based
// decompression.
func NewDecompressingStore(inner Store) *DecompressingStore {
	return &DecompressingStore{inner: inner}
}

// List returns the names of all blobs in the underlying store.
func (s *DecompressingStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

// Open opens a blob for reading, decompressing it if its extension calls
// for it.
func (s *DecompressingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	switch path.Ext(name) {
	case ".zst":
		dec, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("zstd %s: %w", name, err)
		}
		return &decompressReader{r: dec.IOReadCloser(), inner: rc}, nil
	case ".lz4":
		return &decompressReader{r: io.NopCloser(lz4.NewReader(rc)), inner: rc}, nil
	case ".gz":
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("gzip %s: %w", name, err)
		}
		return &decompressReader{r: gz, inner: rc}, nil
	default:
		return rc, nil
	}
}

// decompressReader closes both the decompressor and the underlying blob.
type decompressReader struct {
	r     io.ReadCloser
	inner io.ReadCloser
}

func (d *decompressReader) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decompressReader) Close() error {
	err := d.r.Close()
	if cerr := d.inner.Close(); err == nil {
		err = cerr
	}
	return err
}
