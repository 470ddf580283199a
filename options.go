package maldata

import (
	"github.com/hupe1980/maldata/blobstore"
	"github.com/hupe1980/maldata/codec"
	"github.com/hupe1980/maldata/collate"
	"golang.org/x/time/rate"
)

type options struct {
	batchSize    int
	valFraction  float64
	testFraction float64
	shuffle      bool
	seed         int64
	maxLen       int
	padValue     int32
	workers      int
	decoder      codec.Decoder
	benignStore  blobstore.Store
	malwareStore blobstore.Store
	holdoutStore blobstore.Store
	limiter      *rate.Limiter
	logger       *Logger
}

// Option configures loader construction.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		batchSize:    32,
		valFraction:  0.1,
		testFraction: 0.1,
		shuffle:      true,
		seed:         1,
		maxLen:       collate.DefaultMaxLen,
		padValue:     collate.DefaultPadValue,
		decoder:      codec.Default,
		logger:       NoopLogger(),
	}
}

// WithBatchSize sets the number of samples per batch. Default: 32.
func WithBatchSize(batchSize int) Option {
	return func(o *options) {
		o.batchSize = batchSize
	}
}

// WithFractions sets the validation and test fractions of the split.
// Default: 0.1 each. Their sum must stay below 1; MakeLoaders fails with a
// *ConfigError otherwise.
func WithFractions(valFraction, testFraction float64) Option {
	return func(o *options) {
		o.valFraction = valFraction
		o.testFraction = testFraction
	}
}

// WithShuffle controls split-time shuffling. Default: true.
// Disabling it makes the split a deterministic cut of each sorted index
// range; the training loader still reshuffles sample order every epoch.
func WithShuffle(shuffle bool) Option {
	return func(o *options) {
		o.shuffle = shuffle
	}
}

// WithSeed seeds both the split and the per-epoch training shuffle.
// Default: 1. The same seed over the same directories reproduces the same
// splits and epoch orders.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMaxLen sets the fixed batch width. Default: collate.DefaultMaxLen.
func WithMaxLen(maxLen int) Option {
	return func(o *options) {
		o.maxLen = maxLen
	}
}

// WithPadValue sets the padding sentinel. Default: collate.DefaultPadValue.
func WithPadValue(padValue int32) Option {
	return func(o *options) {
		o.padValue = padValue
	}
}

// WithWorkers sets the number of concurrent batch builders per loader.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithDecoder sets the sample decoder. Default: codec.Default (pickle).
func WithDecoder(dec codec.Decoder) Option {
	return func(o *options) {
		if dec == nil {
			dec = codec.Default
		}
		o.decoder = dec
	}
}

// WithStores overrides the directory arguments of MakeLoaders with
// arbitrary blob stores (e.g. S3 or MinIO backed). When set, the directory
// arguments are ignored.
func WithStores(benign, malware blobstore.Store) Option {
	return func(o *options) {
		o.benignStore = benign
		o.malwareStore = malware
	}
}

// WithHoldoutStore overrides the directory argument of HoldoutLoader with
// an arbitrary blob store.
func WithHoldoutStore(store blobstore.Store) Option {
	return func(o *options) {
		o.holdoutStore = store
	}
}

// WithRateLimit caps sample loads per second across all constructed
// loaders. Useful against remote object stores with request quotas.
// Default: unlimited.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger. Default: NoopLogger().
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// validate applies the eager configuration checks that do not belong to a
// single component.
func (o *options) validate() error {
	if o.batchSize <= 0 {
		return &ConfigError{Field: "batch size", Reason: "must be positive"}
	}
	if o.maxLen <= 0 {
		return &ConfigError{Field: "max len", Reason: "must be positive"}
	}
	return nil
}
