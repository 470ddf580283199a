package dataset

import (
	"context"
	"fmt"
	"sort"

	"github.com/hupe1980/maldata/blobstore"
	"github.com/hupe1980/maldata/codec"
)

// SampleStore enumerates and loads the serialized samples of one blob
// store. Blob names are sorted lexicographically once at construction so
// that indexing never depends on filesystem or listing order.
//
// Listing happens eagerly; reading and decoding happen lazily in Load, so
// broken files surface at access time, not at construction.
type SampleStore struct {
	store blobstore.Store
	dec   codec.Decoder
	names []string
}

// NewSampleStore lists the given store and prepares it for indexed access.
// If dec is nil, codec.Default is used.
func NewSampleStore(ctx context.Context, store blobstore.Store, dec codec.Decoder) (*SampleStore, error) {
	if dec == nil {
		dec = codec.Default
	}

	names, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	sort.Strings(names)

	return &SampleStore{
		store: store,
		dec:   dec,
		names: names,
	}, nil
}

// Len returns the number of samples in the store.
func (s *SampleStore) Len() int { return len(s.names) }

// Name returns the blob name of sample i.
func (s *SampleStore) Name(i int) string { return s.names[i] }

// Load reads and decodes sample i.
// It returns an *IndexError for i outside [0, Len()) and a *DataError when
// the blob is missing, unreadable or malformed.
func (s *SampleStore) Load(ctx context.Context, i int) (Sample, error) {
	if i < 0 || i >= len(s.names) {
		return nil, &IndexError{Index: i, Len: len(s.names)}
	}

	name := s.names[i]

	rc, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, &DataError{Name: name, cause: err}
	}
	defer rc.Close()

	values, err := s.dec.Decode(rc)
	if err != nil {
		return nil, &DataError{Name: name, cause: err}
	}

	return Sample(values), nil
}
