package maldata

import (
	"context"

	"github.com/hupe1980/maldata/blobstore"
	"github.com/hupe1980/maldata/collate"
	"github.com/hupe1980/maldata/dataset"
	"github.com/hupe1980/maldata/loader"
	"github.com/hupe1980/maldata/split"
)

// Loaders bundles the three batch sources of one split, plus the dataset
// and split they were derived from.
type Loaders struct {
	Train *loader.Loader
	Val   *loader.Loader
	Test  *loader.Loader

	// Dataset is the union dataset all three loaders read from.
	Dataset *dataset.Union

	// Split holds the index subsets backing the loaders.
	Split *split.Result
}

// MakeLoaders assembles the union dataset over the two sample directories,
// computes a stratified train/val/test split, and wires the three loaders.
//
// The training loader reshuffles sample order every epoch; the validation
// and test loaders iterate their subsets in deterministic order. All
// configuration is validated here, with *ConfigError, before any file is
// touched.
//
// benignDir and malwareDir are local directories; pass WithStores to read
// from object storage instead, in which case both arguments are ignored.
func MakeLoaders(ctx context.Context, benignDir, malwareDir string, optFns ...Option) (*Loaders, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Validate the fractions before any listing happens.
	splitter, err := split.New(opts.valFraction, opts.testFraction,
		split.WithShuffle(opts.shuffle),
		split.WithSeed(opts.seed),
	)
	if err != nil {
		return nil, translateError(err)
	}

	benignStore := opts.benignStore
	malwareStore := opts.malwareStore
	if benignStore == nil {
		benignStore = blobstore.NewLocalStore(benignDir)
	}
	if malwareStore == nil {
		malwareStore = blobstore.NewLocalStore(malwareDir)
	}

	benign, err := dataset.NewSampleStore(ctx, blobstore.NewDecompressingStore(benignStore), opts.decoder)
	if err != nil {
		return nil, err
	}
	malware, err := dataset.NewSampleStore(ctx, blobstore.NewDecompressingStore(malwareStore), opts.decoder)
	if err != nil {
		return nil, err
	}

	ds := dataset.NewUnion(benign, malware)
	opts.logger.LogDataset(ctx, ds.NumBenign(), ds.NumMalware())

	res, err := splitter.Split(ds.NumBenign(), ds.NumMalware())
	if err != nil {
		return nil, err
	}
	opts.logger.LogSplit(ctx, len(res.Train), len(res.Val), len(res.Test))

	collator, err := collate.New(
		collate.WithMaxLen(opts.maxLen),
		collate.WithPadValue(opts.padValue),
	)
	if err != nil {
		return nil, err
	}

	train, err := opts.newLoader(dataset.NewSubset(ds, res.Train), collator, true)
	if err != nil {
		return nil, err
	}
	val, err := opts.newLoader(dataset.NewSubset(ds, res.Val), collator, false)
	if err != nil {
		return nil, err
	}
	test, err := opts.newLoader(dataset.NewSubset(ds, res.Test), collator, false)
	if err != nil {
		return nil, err
	}

	return &Loaders{
		Train:   train,
		Val:     val,
		Test:    test,
		Dataset: ds,
		Split:   res,
	}, nil
}

// HoldoutLoader builds an evaluation loader over a pre-separated,
// single-label sample directory. The directory (or store, see
// WithHoldoutStore) is always an explicit parameter; nothing is baked in.
//
// The loader preserves index order and never shuffles.
func HoldoutLoader(ctx context.Context, dir string, malware bool, optFns ...Option) (*loader.Loader, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	store := opts.holdoutStore
	if store == nil {
		store = blobstore.NewLocalStore(dir)
	}

	samples, err := dataset.NewSampleStore(ctx, blobstore.NewDecompressingStore(store), opts.decoder)
	if err != nil {
		return nil, err
	}

	collator, err := collate.New(
		collate.WithMaxLen(opts.maxLen),
		collate.WithPadValue(opts.padValue),
	)
	if err != nil {
		return nil, err
	}

	return opts.newLoader(dataset.NewUniLabel(samples, malware), collator, false)
}

// newLoader wires the shared loader options; shuffle differs per split
// role.
func (o *options) newLoader(ds dataset.Dataset, collator *collate.Collator, shuffle bool) (*loader.Loader, error) {
	ldr, err := loader.New(ds, collator,
		loader.WithBatchSize(o.batchSize),
		loader.WithShuffle(shuffle),
		loader.WithSeed(o.seed),
		loader.WithWorkers(o.workers),
		loader.WithLimiter(o.limiter),
		loader.WithLogger(o.logger.Logger),
	)
	if err != nil {
		return nil, translateError(err)
	}
	return ldr, nil
}
