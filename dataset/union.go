package dataset

import "context"

// Union composes a benign and a malware sample store into one index space.
//
// The global index space is the concatenation of both partitions:
// indices [0, NumBenign()) address the benign store with label 0.0, indices
// [NumBenign(), Len()) address the malware store with label 1.0.
type Union struct {
	benign  *SampleStore
	malware *SampleStore
}

// NewUnion creates a Union over the two stores.
func NewUnion(benign, malware *SampleStore) *Union {
	return &Union{benign: benign, malware: malware}
}

// Len returns the total number of samples across both partitions.
func (u *Union) Len() int { return u.benign.Len() + u.malware.Len() }

// NumBenign returns the size of the benign partition.
func (u *Union) NumBenign() int { return u.benign.Len() }

// NumMalware returns the size of the malware partition.
func (u *Union) NumMalware() int { return u.malware.Len() }

// Get loads the sample at the given global index.
// Partition dispatch is a bounds comparison; *IndexError is reserved for
// indices outside [0, Len()).
func (u *Union) Get(ctx context.Context, index int) (Labeled, error) {
	switch {
	case index < 0 || index >= u.Len():
		return Labeled{}, &IndexError{Index: index, Len: u.Len()}
	case index < u.benign.Len():
		sample, err := u.benign.Load(ctx, index)
		if err != nil {
			return Labeled{}, err
		}
		return Labeled{Sample: sample, Label: LabelBenign}, nil
	default:
		sample, err := u.malware.Load(ctx, index-u.benign.Len())
		if err != nil {
			return Labeled{}, err
		}
		return Labeled{Sample: sample, Label: LabelMalware}, nil
	}
}
