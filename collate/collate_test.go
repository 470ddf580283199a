package collate

import (
	"testing"

	"github.com/hupe1980/maldata/dataset"
	"github.com/hupe1980/maldata/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollator_Padding(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.Equal(t, DefaultMaxLen, c.MaxLen())

	rng := testutil.NewRNG(1)
	sample := dataset.Sample(rng.Sample(10))

	batch, err := c.Collate([]dataset.Labeled{{Sample: sample, Label: dataset.LabelMalware}})
	require.NoError(t, err)

	require.Equal(t, []int{1, DefaultMaxLen}, []int(batch.Data.Shape()))
	require.Equal(t, 1, batch.Size())

	row := batch.Data.Data().([]int32)
	for i := 0; i < 10; i++ {
		require.Equal(t, sample[i], row[i])
	}
	for i := 10; i < DefaultMaxLen; i++ {
		require.Equal(t, int32(DefaultPadValue), row[i], "position %d", i)
	}
}

func TestCollator_Truncation(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	rng := testutil.NewRNG(2)
	sample := dataset.Sample(rng.Sample(5000))

	batch, err := c.Collate([]dataset.Labeled{{Sample: sample, Label: dataset.LabelBenign}})
	require.NoError(t, err)

	row := batch.Data.Data().([]int32)
	require.Len(t, row, DefaultMaxLen)

	// The first maxLen values survive; no pad symbol is introduced.
	for i := 0; i < DefaultMaxLen; i++ {
		require.Equal(t, sample[i], row[i])
		require.NotEqual(t, int32(DefaultPadValue), row[i])
	}
}

func TestCollator_FixedWidthAcrossBatch(t *testing.T) {
	// The width is the configured maximum, not the longest sample in the
	// batch.
	c, err := New(WithMaxLen(16))
	require.NoError(t, err)

	batch, err := c.Collate([]dataset.Labeled{
		{Sample: dataset.Sample{1, 2, 3}, Label: dataset.LabelBenign},
		{Sample: dataset.Sample{4}, Label: dataset.LabelMalware},
	})
	require.NoError(t, err)
	require.Equal(t, []int{2, 16}, []int(batch.Data.Shape()))

	data := batch.Data.Data().([]int32)
	require.Equal(t, []int32{1, 2, 3}, data[:3])
	require.Equal(t, int32(DefaultPadValue), data[3])
	require.Equal(t, int32(4), data[16])
	require.Equal(t, int32(DefaultPadValue), data[17])
}

func TestCollator_LabelOrder(t *testing.T) {
	c, err := New(WithMaxLen(8))
	require.NoError(t, err)

	items := []dataset.Labeled{
		{Sample: dataset.Sample{1}, Label: 1},
		{Sample: dataset.Sample{2}, Label: 0},
		{Sample: dataset.Sample{3}, Label: 1},
		{Sample: dataset.Sample{4}, Label: 0},
	}

	batch, err := c.Collate(items)
	require.NoError(t, err)

	require.Equal(t, []int{4}, []int(batch.Labels.Shape()))
	require.Equal(t, []float32{1, 0, 1, 0}, batch.Labels.Data().([]float32))
}

func TestCollator_CustomPadValue(t *testing.T) {
	c, err := New(WithMaxLen(4), WithPadValue(0))
	require.NoError(t, err)

	batch, err := c.Collate([]dataset.Labeled{{Sample: dataset.Sample{9}, Label: 0}})
	require.NoError(t, err)
	require.Equal(t, []int32{9, 0, 0, 0}, batch.Data.Data().([]int32))
}

func TestCollator_ExactWidthSample(t *testing.T) {
	c, err := New(WithMaxLen(4))
	require.NoError(t, err)

	batch, err := c.Collate([]dataset.Labeled{{Sample: dataset.Sample{1, 2, 3, 4}, Label: 0}})
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 4}, batch.Data.Data().([]int32))
}

func TestNew_RejectsNonPositiveWidth(t *testing.T) {
	_, err := New(WithMaxLen(0))
	require.Error(t, err)

	_, err = New(WithMaxLen(-1))
	require.Error(t, err)
}

func TestCollator_EmptyBatch(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Collate(nil)
	require.Error(t, err)
}
