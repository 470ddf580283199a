// Package collate turns variable-length samples into rectangular batches.
package collate

import (
	"fmt"

	"github.com/hupe1980/maldata/dataset"
	"gorgonia.org/tensor"
)

const (
	// DefaultMaxLen is the default batch width.
	DefaultMaxLen = 4096

	// DefaultPadValue is the default padding sentinel. It lies outside the
	// valid byte range 0-255 on purpose: the model can tell real zero
	// bytes apart from padding.
	DefaultPadValue = 256
)

// Batch is a rectangular grid of samples paired with a label vector.
type Batch struct {
	// Data has shape (len(batch), maxLen) and dtype int32. Every row is
	// padded or truncated to the configured width regardless of the
	// lengths actually present in the batch, so tensor shapes stay stable
	// across all batches of a run.
	Data *tensor.Dense

	// Labels has shape (len(batch),) and dtype float32, ordered exactly
	// like the input samples.
	Labels *tensor.Dense
}

// Size returns the number of rows in the batch.
func (b *Batch) Size() int { return b.Data.Shape()[0] }

// Collator pads or truncates samples to a fixed width.
type Collator struct {
	maxLen   int
	padValue int32
}

// Option configures a Collator.
type Option func(*Collator)

// WithMaxLen sets the fixed batch width. Default: DefaultMaxLen.
func WithMaxLen(maxLen int) Option {
	return func(c *Collator) {
		c.maxLen = maxLen
	}
}

// WithPadValue sets the padding sentinel. Default: DefaultPadValue.
func WithPadValue(padValue int32) Option {
	return func(c *Collator) {
		c.padValue = padValue
	}
}

// New creates a Collator. It fails eagerly on a non-positive width.
func New(optFns ...Option) (*Collator, error) {
	c := &Collator{
		maxLen:   DefaultMaxLen,
		padValue: DefaultPadValue,
	}

	for _, fn := range optFns {
		fn(c)
	}

	if c.maxLen <= 0 {
		return nil, fmt.Errorf("max len must be positive, got %d", c.maxLen)
	}

	return c, nil
}

// MaxLen returns the configured batch width.
func (c *Collator) MaxLen() int { return c.maxLen }

// Collate builds one rectangular batch out of the given samples.
//
// Every row is independently right-padded with the pad value or truncated
// to the first maxLen elements. No sampling, no random crop: truncation
// always keeps the prefix.
func (c *Collator) Collate(items []dataset.Labeled) (*Batch, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot collate an empty batch")
	}

	backing := make([]int32, len(items)*c.maxLen)
	labels := make([]float32, len(items))

	for row, item := range items {
		out := backing[row*c.maxLen : (row+1)*c.maxLen]

		n := copy(out, item.Sample)
		for i := n; i < c.maxLen; i++ {
			out[i] = c.padValue
		}

		labels[row] = item.Label
	}

	return &Batch{
		Data:   tensor.New(tensor.WithShape(len(items), c.maxLen), tensor.WithBacking(backing)),
		Labels: tensor.New(tensor.WithShape(len(items)), tensor.WithBacking(labels)),
	}, nil
}
