// Package loader iterates a dataset in collated batches.
//
// A Loader walks an index order (optionally reshuffled per epoch), loads
// the samples of each batch, and hands them to a collator. Batch
// construction is parallelized across a bounded worker group, but batches
// are always delivered in order: for non-shuffled loaders this makes
// evaluation reproducible regardless of the worker count, and for shuffled
// loaders the epoch permutation alone determines what the model sees.
package loader

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"

	"github.com/hupe1980/maldata/collate"
	"github.com/hupe1980/maldata/dataset"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrInvalidBatchSize is returned when a non-positive batch size is
// configured.
var ErrInvalidBatchSize = errors.New("batch size must be positive")

// Loader produces collated batches from a dataset.
type Loader struct {
	ds       dataset.Dataset
	collator *collate.Collator

	batchSize int
	shuffle   bool
	workers   int
	limiter   *rate.Limiter
	logger    *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Loader.
type Option func(*Loader)

// WithBatchSize sets the number of samples per batch. Default: 32.
func WithBatchSize(batchSize int) Option {
	return func(l *Loader) {
		l.batchSize = batchSize
	}
}

// WithShuffle controls whether the sample order is reshuffled at the start
// of every epoch. Default: false (index order preserved).
func WithShuffle(shuffle bool) Option {
	return func(l *Loader) {
		l.shuffle = shuffle
	}
}

// WithSeed seeds the epoch shuffle. Default: 1.
func WithSeed(seed int64) Option {
	return func(l *Loader) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWorkers sets the number of concurrent batch builders.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(l *Loader) {
		l.workers = workers
	}
}

// WithLimiter rate-limits sample loads. Useful against remote object
// stores with throughput quotas. The limiter may be shared across loaders.
// Default: unlimited.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(l *Loader) {
		l.limiter = limiter
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader over the dataset.
// It fails eagerly with ErrInvalidBatchSize on a non-positive batch size.
func New(ds dataset.Dataset, collator *collate.Collator, optFns ...Option) (*Loader, error) {
	l := &Loader{
		ds:        ds,
		collator:  collator,
		batchSize: 32,
		workers:   runtime.GOMAXPROCS(0),
		logger:    slog.New(slog.DiscardHandler),
		rng:       rand.New(rand.NewSource(1)),
	}

	for _, fn := range optFns {
		fn(l)
	}

	if l.batchSize <= 0 {
		return nil, fmt.Errorf("batch size %d: %w", l.batchSize, ErrInvalidBatchSize)
	}
	if l.workers <= 0 {
		l.workers = runtime.GOMAXPROCS(0)
	}

	return l, nil
}

// NumSamples returns the number of samples per epoch.
func (l *Loader) NumSamples() int { return l.ds.Len() }

// Len returns the number of batches per epoch.
func (l *Loader) Len() int {
	return (l.ds.Len() + l.batchSize - 1) / l.batchSize
}

// Batches returns an iterator over one epoch of collated batches.
//
// A load or decode failure aborts the batch it belongs to and is yielded
// as the iterator's error; iteration stops afterwards. Errors are never
// downgraded to a default sample. The iterator supports early termination
// by breaking from the loop.
//
// Example:
//
//	for batch, err := range ldr.Batches(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    step(batch)
//	}
func (l *Loader) Batches(ctx context.Context) iter.Seq2[*collate.Batch, error] {
	return func(yield func(*collate.Batch, error) bool) {
		order := l.epochOrder()

		l.logger.DebugContext(ctx, "epoch start",
			"samples", len(order),
			"batches", l.Len(),
			"shuffle", l.shuffle,
		)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(l.workers)

		type result struct {
			batch *collate.Batch
			err   error
		}

		// Every batch gets a one-shot slot; reading the slot channel in
		// submission order keeps delivery ordered no matter how many
		// workers run.
		slots := make(chan chan result, l.workers)
		producerDone := make(chan struct{})

		defer func() {
			// Unblock the producer and any in-flight workers, then wait
			// them out. The producer must exit before Wait so that no
			// submission races the shutdown; worker errors surface
			// through their slots, not through Wait.
			cancel()
			<-producerDone
			_ = g.Wait()
		}()

		go func() {
			defer close(producerDone)
			defer close(slots)
			for start := 0; start < len(order); start += l.batchSize {
				end := min(start+l.batchSize, len(order))
				indices := order[start:end]

				slot := make(chan result, 1)
				select {
				case slots <- slot:
				case <-gctx.Done():
					return
				}

				g.Go(func() error {
					batch, err := l.buildBatch(gctx, indices)
					slot <- result{batch: batch, err: err}
					return err
				})
			}
		}()

		for slot := range slots {
			r := <-slot
			if !yield(r.batch, r.err) || r.err != nil {
				return
			}
		}
	}
}

// epochOrder returns the sample order for one epoch.
func (l *Loader) epochOrder() []int {
	order := make([]int, l.ds.Len())
	for i := range order {
		order[i] = i
	}

	if l.shuffle {
		l.mu.Lock()
		l.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		l.mu.Unlock()
	}

	return order
}

func (l *Loader) buildBatch(ctx context.Context, indices []int) (*collate.Batch, error) {
	items := make([]dataset.Labeled, 0, len(indices))

	for _, idx := range indices {
		if l.limiter != nil {
			if err := l.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		item, err := l.ds.Get(ctx, idx)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return l.collator.Collate(items)
}
