package codec

import "io"

// Raw decodes samples stored as plain byte sequences: every byte of the
// file is one feature value. Useful for corpora that skip the pickling step
// and store executable bytes directly.
type Raw struct{}

// Decode reads the whole blob and widens each byte to an int32.
func (Raw) Decode(r io.Reader) ([]int32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	out := make([]int32, len(data))
	for i, b := range data {
		out[i] = int32(b)
	}
	return out, nil
}

// Name returns the unique name of the decoder ("raw").
func (Raw) Name() string { return "raw" }
