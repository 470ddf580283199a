// Package split partitions a dataset's index space into train, validation
// and test subsets, stratified by label partition.
//
// Randomness is injected: the splitter owns a seeded math/rand source, so a
// fixed seed always reproduces the same partition. Nothing here touches
// global random state.
package split

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"
)

// FractionError indicates that the requested validation and test fractions
// leave nothing for training.
type FractionError struct {
	Val  float64
	Test float64
}

func (e *FractionError) Error() string {
	return fmt.Sprintf("val fraction %v + test fraction %v must be less than 1", e.Val, e.Test)
}

// Result holds the three disjoint index subsets of one split.
// Together they cover the full index range exactly once.
type Result struct {
	Train []int
	Val   []int
	Test  []int
}

// Splitter produces stratified train/val/test splits.
type Splitter struct {
	valFraction  float64
	testFraction float64
	shuffle      bool
	rng          *rand.Rand
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithShuffle controls whether index ranges are permuted before splitting.
// Default: true. With shuffling disabled the split is a deterministic cut
// of each sorted index range.
func WithShuffle(shuffle bool) Option {
	return func(s *Splitter) {
		s.shuffle = shuffle
	}
}

// WithSeed sets the seed of the splitter's random source. Default: 1.
func WithSeed(seed int64) Option {
	return func(s *Splitter) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a Splitter.
// It fails eagerly with a *FractionError if valFraction+testFraction >= 1
// or either fraction is negative, before any split work happens.
func New(valFraction, testFraction float64, optFns ...Option) (*Splitter, error) {
	if valFraction < 0 || testFraction < 0 || valFraction+testFraction >= 1 {
		return nil, &FractionError{Val: valFraction, Test: testFraction}
	}

	s := &Splitter{
		valFraction:  valFraction,
		testFraction: testFraction,
		shuffle:      true,
		rng:          rand.New(rand.NewSource(1)),
	}

	for _, fn := range optFns {
		fn(s)
	}

	return s, nil
}

// Split partitions the index space [0, numBenign+numMalware) where the
// first numBenign indices are benign and the rest malware.
//
// Each label-homogeneous range is split independently with the same
// fractions and the parts concatenated, so label proportions in every
// subset mirror the global proportions. An empty label range contributes
// nothing; a singleton range lands wholly in one subset.
func (s *Splitter) Split(numBenign, numMalware int) (*Result, error) {
	benign := indexRange(0, numBenign)
	malware := indexRange(numBenign, numBenign+numMalware)

	res := &Result{}
	for _, idx := range [][]int{benign, malware} {
		train, val, test := s.splitRange(idx)
		res.Train = append(res.Train, train...)
		res.Val = append(res.Val, val...)
		res.Test = append(res.Test, test...)
	}

	if err := verify(res, numBenign+numMalware); err != nil {
		return nil, err
	}
	return res, nil
}

// splitRange performs the two-stage three-way split of one label range:
// first carve off the test set, then carve the validation set out of the
// remainder. The validation fraction applies to the remainder, matching
// the chained two-way splits it is built from.
func (s *Splitter) splitRange(idx []int) (train, val, test []int) {
	trainVal, test := TrainTestSplit(idx, s.testFraction, s.shuffle, s.rng)
	train, val = TrainTestSplit(trainVal, s.valFraction, s.shuffle, s.rng)
	return train, val, test
}

// TrainTestSplit partitions indices into two disjoint parts where the
// second holds ceil(len*testFraction) elements.
//
// With shuffle, elements are drawn from a permutation generated by rng;
// without, the tail of the slice becomes the second part. Sizing and
// ordering follow the usual holdout-split convention, so evenly divisible
// inputs split exactly (100 indices at 0.2 -> 80/20).
func TrainTestSplit(indices []int, testFraction float64, shuffle bool, rng *rand.Rand) (train, test []int) {
	n := len(indices)
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest > n {
		nTest = n
	}

	if !shuffle {
		return indices[:n-nTest], indices[n-nTest:]
	}

	perm := make([]int, n)
	copy(perm, indices)
	rng.Shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	return perm[nTest:], perm[:nTest]
}

// verify checks the split invariant: the three subsets are pairwise
// disjoint and together cover [0, total) exactly. A violation is a bug in
// the splitter, not a caller error.
func verify(res *Result, total int) error {
	train := toBitmap(res.Train)
	val := toBitmap(res.Val)
	test := toBitmap(res.Test)

	if roaring.And(train, val).GetCardinality() != 0 ||
		roaring.And(train, test).GetCardinality() != 0 ||
		roaring.And(val, test).GetCardinality() != 0 {
		return fmt.Errorf("split produced overlapping subsets")
	}

	union := roaring.Or(roaring.Or(train, val), test)
	if union.GetCardinality() != uint64(total) {
		return fmt.Errorf("split covers %d of %d indices", union.GetCardinality(), total)
	}

	return nil
}

func toBitmap(indices []int) *roaring.Bitmap {
	b := roaring.New()
	for _, i := range indices {
		b.Add(uint32(i))
	}
	return b
}

func indexRange(lo, hi int) []int {
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return idx
}
