package maldata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/maldata"
	"github.com/hupe1980/maldata/blobstore"
	"github.com/hupe1980/maldata/dataset"
	"github.com/hupe1980/maldata/testutil"
	"github.com/stretchr/testify/require"
)

// newCorpus writes benign and malware sample directories and returns their
// paths.
func newCorpus(t *testing.T, numBenign, numMalware int) (string, string) {
	t.Helper()

	benignDir := filepath.Join(t.TempDir(), "benign")
	malwareDir := filepath.Join(t.TempDir(), "malware")
	require.NoError(t, os.MkdirAll(benignDir, 0o755))
	require.NoError(t, os.MkdirAll(malwareDir, 0o755))

	rng := testutil.NewRNG(99)
	_, err := testutil.RandomSampleDir(benignDir, numBenign, 4, 64, rng)
	require.NoError(t, err)
	_, err = testutil.RandomSampleDir(malwareDir, numMalware, 4, 64, rng)
	require.NoError(t, err)

	return benignDir, malwareDir
}

func TestMakeLoaders_EndToEnd(t *testing.T) {
	benignDir, malwareDir := newCorpus(t, 20, 12)
	ctx := context.Background()

	loaders, err := maldata.MakeLoaders(ctx, benignDir, malwareDir,
		maldata.WithBatchSize(4),
		maldata.WithFractions(0.1, 0.2),
		maldata.WithSeed(7),
		maldata.WithMaxLen(64),
	)
	require.NoError(t, err)

	require.Equal(t, 32, loaders.Dataset.Len())
	require.Equal(t, 20, loaders.Dataset.NumBenign())
	require.Equal(t, 12, loaders.Dataset.NumMalware())

	total := len(loaders.Split.Train) + len(loaders.Split.Val) + len(loaders.Split.Test)
	require.Equal(t, 32, total)

	var samples, rows int
	for batch, err := range loaders.Train.Batches(ctx) {
		require.NoError(t, err)
		require.Equal(t, 64, []int(batch.Data.Shape())[1])
		rows++
		samples += batch.Size()
	}
	require.Equal(t, loaders.Train.Len(), rows)
	require.Equal(t, len(loaders.Split.Train), samples)
}

func TestMakeLoaders_EvalOrderDeterministic(t *testing.T) {
	benignDir, malwareDir := newCorpus(t, 10, 10)
	ctx := context.Background()

	collect := func(workers int) []float32 {
		loaders, err := maldata.MakeLoaders(ctx, benignDir, malwareDir,
			maldata.WithBatchSize(3),
			maldata.WithFractions(0.2, 0.3),
			maldata.WithSeed(13),
			maldata.WithMaxLen(64),
			maldata.WithWorkers(workers),
		)
		require.NoError(t, err)

		var labels []float32
		for batch, err := range loaders.Test.Batches(ctx) {
			require.NoError(t, err)
			labels = append(labels, batch.Labels.Data().([]float32)...)
		}
		return labels
	}

	one := collect(1)
	many := collect(8)
	require.Equal(t, one, many)
	require.NotEmpty(t, one)
}

func TestMakeLoaders_Stratification(t *testing.T) {
	benignDir, malwareDir := newCorpus(t, 30, 30)
	ctx := context.Background()

	loaders, err := maldata.MakeLoaders(ctx, benignDir, malwareDir,
		maldata.WithFractions(0.1, 0.2),
		maldata.WithSeed(5),
	)
	require.NoError(t, err)

	var benign, malware int
	for _, idx := range loaders.Split.Test {
		if idx < loaders.Dataset.NumBenign() {
			benign++
		} else {
			malware++
		}
	}
	require.Equal(t, 6, benign)
	require.Equal(t, 6, malware)
}

func TestMakeLoaders_ConfigErrors(t *testing.T) {
	benignDir, malwareDir := newCorpus(t, 2, 2)
	ctx := context.Background()

	tests := []struct {
		name string
		opts []maldata.Option
	}{
		{name: "fraction sum above one", opts: []maldata.Option{maldata.WithFractions(0.5, 0.6)}},
		{name: "fraction sum exactly one", opts: []maldata.Option{maldata.WithFractions(0.4, 0.6)}},
		{name: "zero batch size", opts: []maldata.Option{maldata.WithBatchSize(0)}},
		{name: "negative batch size", opts: []maldata.Option{maldata.WithBatchSize(-1)}},
		{name: "zero max len", opts: []maldata.Option{maldata.WithMaxLen(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maldata.MakeLoaders(ctx, benignDir, malwareDir, tt.opts...)

			var ce *maldata.ConfigError
			require.ErrorAs(t, err, &ce)
			require.ErrorIs(t, err, maldata.ErrInvalidConfig)
		})
	}

	// Valid small fractions pass.
	_, err := maldata.MakeLoaders(ctx, benignDir, malwareDir, maldata.WithFractions(0.1, 0.1))
	require.NoError(t, err)
}

func TestMakeLoaders_WithStores(t *testing.T) {
	benign := blobstore.NewMemoryStore()
	malware := blobstore.NewMemoryStore()
	benign.Put("a.pkl", testutil.PickleInts([]int32{1, 2, 3}))
	benign.Put("b.pkl", testutil.PickleInts([]int32{4}))
	malware.Put("a.pkl", testutil.PickleInts([]int32{5, 6}))

	ctx := context.Background()

	loaders, err := maldata.MakeLoaders(ctx, "", "",
		maldata.WithStores(benign, malware),
		maldata.WithFractions(0, 0),
		maldata.WithBatchSize(2),
		maldata.WithMaxLen(8),
	)
	require.NoError(t, err)
	require.Equal(t, 3, loaders.Dataset.Len())
	require.Equal(t, 3, len(loaders.Split.Train))
}

func TestMakeLoaders_DataErrorSurfacesInIteration(t *testing.T) {
	benign := blobstore.NewMemoryStore()
	malware := blobstore.NewMemoryStore()
	benign.Put("a.pkl", testutil.PickleInts([]int32{1}))
	benign.Put("broken.pkl", []byte("garbage"))
	malware.Put("a.pkl", testutil.PickleInts([]int32{2}))

	ctx := context.Background()

	loaders, err := maldata.MakeLoaders(ctx, "", "",
		maldata.WithStores(benign, malware),
		maldata.WithFractions(0, 0),
		maldata.WithMaxLen(8),
	)
	require.NoError(t, err)

	var sawErr error
	for _, err := range loaders.Train.Batches(ctx) {
		if err != nil {
			sawErr = err
			break
		}
	}

	var de *dataset.DataError
	require.ErrorAs(t, sawErr, &de)
	require.Equal(t, "broken.pkl", de.Name)
}

func TestHoldoutLoader(t *testing.T) {
	dir := t.TempDir()
	rng := testutil.NewRNG(3)
	_, err := testutil.RandomSampleDir(dir, 7, 4, 32, rng)
	require.NoError(t, err)

	ctx := context.Background()

	ldr, err := maldata.HoldoutLoader(ctx, dir, true,
		maldata.WithBatchSize(3),
		maldata.WithMaxLen(32),
	)
	require.NoError(t, err)
	require.Equal(t, 7, ldr.NumSamples())
	require.Equal(t, 3, ldr.Len())

	var labels []float32
	for batch, err := range ldr.Batches(ctx) {
		require.NoError(t, err)
		labels = append(labels, batch.Labels.Data().([]float32)...)
	}

	require.Len(t, labels, 7)
	for _, l := range labels {
		require.Equal(t, float32(1), l)
	}
}

func TestHoldoutLoader_WithStore(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("a.pkl", testutil.PickleInts([]int32{1}))

	ldr, err := maldata.HoldoutLoader(context.Background(), "", false,
		maldata.WithHoldoutStore(store),
		maldata.WithMaxLen(8),
	)
	require.NoError(t, err)
	require.Equal(t, 1, ldr.NumSamples())
}

func TestMakeLoaders_CompressedSamples(t *testing.T) {
	// Compressed fixtures run through the decompressing store before
	// decoding.
	benignDir := filepath.Join(t.TempDir(), "benign")
	malwareDir := filepath.Join(t.TempDir(), "malware")
	require.NoError(t, os.MkdirAll(benignDir, 0o755))
	require.NoError(t, os.MkdirAll(malwareDir, 0o755))

	require.NoError(t, os.WriteFile(
		filepath.Join(benignDir, "a.pkl"),
		testutil.PickleInts([]int32{1, 2}), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(malwareDir, "a.pkl.gz"),
		testutil.GzipBytes(testutil.PickleInts([]int32{3, 4})), 0o644))

	ctx := context.Background()

	loaders, err := maldata.MakeLoaders(ctx, benignDir, malwareDir,
		maldata.WithFractions(0, 0),
		maldata.WithMaxLen(8),
	)
	require.NoError(t, err)

	item, err := loaders.Dataset.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, dataset.Sample{3, 4}, item.Sample)
	require.Equal(t, dataset.LabelMalware, item.Label)
}
