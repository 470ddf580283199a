package dataset

import "context"

// UniLabel wraps a single sample store with a fixed label. Use it when
// directory-level labeling is already known, e.g. when evaluating against a
// pre-separated holdout set.
type UniLabel struct {
	store *SampleStore
	label float32
}

// NewUniLabel creates a fixed-label dataset over the store.
func NewUniLabel(store *SampleStore, malware bool) *UniLabel {
	label := LabelBenign
	if malware {
		label = LabelMalware
	}
	return &UniLabel{store: store, label: label}
}

// Len returns the number of samples.
func (d *UniLabel) Len() int { return d.store.Len() }

// Get loads the sample at the given index with the fixed label.
func (d *UniLabel) Get(ctx context.Context, index int) (Labeled, error) {
	sample, err := d.store.Load(ctx, index)
	if err != nil {
		return Labeled{}, err
	}
	return Labeled{Sample: sample, Label: d.label}, nil
}
