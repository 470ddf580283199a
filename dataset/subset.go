package dataset

import "context"

// Subset is a non-owning ordered view of indices into a larger dataset.
// It copies neither samples nor the dataset; its lifetime is bounded by the
// dataset it references.
//
// Position i of the subset maps to global index Indices()[i]. The order of
// the index slice is preserved, which is what makes evaluation loaders
// deterministic.
type Subset struct {
	ds      Dataset
	indices []int
}

// NewSubset creates an index view over ds. The index slice is used as
// given, not copied; callers must not mutate it afterwards.
func NewSubset(ds Dataset, indices []int) *Subset {
	return &Subset{ds: ds, indices: indices}
}

// Len returns the number of indices in the view.
func (s *Subset) Len() int { return len(s.indices) }

// Indices returns the underlying index slice.
func (s *Subset) Indices() []int { return s.indices }

// Get loads the sample at position i of the view.
func (s *Subset) Get(ctx context.Context, i int) (Labeled, error) {
	if i < 0 || i >= len(s.indices) {
		return Labeled{}, &IndexError{Index: i, Len: len(s.indices)}
	}
	return s.ds.Get(ctx, s.indices[i])
}
