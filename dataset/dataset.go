package dataset

import "context"

// Label values. Labels are float32 so they can feed a sigmoid head
// without conversion.
const (
	LabelBenign  float32 = 0.0
	LabelMalware float32 = 1.0
)

// Sample is one decoded feature sequence: byte values 0-255, variable
// length. Immutable once loaded.
type Sample []int32

// Labeled pairs a sample with its label.
type Labeled struct {
	Sample Sample
	Label  float32
}

// Dataset is an index-addressed collection of labeled samples.
//
// Get must be side-effect-free aside from the file read, so that
// concurrent fetches of distinct indices need no coordination.
type Dataset interface {
	Len() int
	Get(ctx context.Context, index int) (Labeled, error)
}
