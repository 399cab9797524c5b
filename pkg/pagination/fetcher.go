package pagination

import (
	"context"
	"sync"
	"time"

	"github.com/Sternrassler/hn-news-proxy/pkg/logging"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxConcurrency is the default number of parallel item requests.
	DefaultMaxConcurrency = 10

	// MaxConcurrencyLimit caps the fan-out of a single page.
	MaxConcurrencyLimit = 20

	// DefaultTimeout bounds one item request.
	DefaultTimeout = 10 * time.Second
)

// Config holds item fetcher configuration
type Config struct {
	// MaxConcurrency is the maximum number of parallel requests, clamped to
	// [1, MaxConcurrencyLimit]
	MaxConcurrency int
	// Timeout per item fetch
	Timeout time.Duration
}

// DefaultConfig returns the default fetcher configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: DefaultMaxConcurrency,
		Timeout:        DefaultTimeout,
	}
}

// FetchFunc resolves one identifier.
type FetchFunc[T any] func(ctx context.Context, id int) (T, error)

// Result is the outcome of resolving one identifier.
type Result[T any] struct {
	Index int
	ID    int
	Value T
	Err   error
}

// ItemFetcher resolves identifiers in parallel using a worker pool.
type ItemFetcher[T any] struct {
	fetch  FetchFunc[T]
	config Config
}

// NewItemFetcher creates a new item fetcher
func NewItemFetcher[T any](fetch FetchFunc[T], config Config) *ItemFetcher[T] {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultMaxConcurrency
	}
	if config.MaxConcurrency > MaxConcurrencyLimit {
		config.MaxConcurrency = MaxConcurrencyLimit
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &ItemFetcher[T]{
		fetch:  fetch,
		config: config,
	}
}

// Concurrency returns the effective worker cap.
func (f *ItemFetcher[T]) Concurrency() int {
	return f.config.MaxConcurrency
}

// FetchAll resolves every identifier and returns the results in the order of
// ids. Failures are reported per result; FetchAll itself never fails. It logs
// through the logger carried by ctx, if any.
func (f *ItemFetcher[T]) FetchAll(ctx context.Context, ids []int) []Result[T] {
	results := make([]Result[T], len(ids))
	for i, id := range ids {
		results[i] = Result[T]{Index: i, ID: id}
	}
	if len(ids) == 0 {
		return results
	}

	start := time.Now()
	workers := min(f.config.MaxConcurrency, len(ids))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go f.worker(ctx, ids, jobs, results, &wg)
	}

	dispatched := 0
dispatch:
	for ; dispatched < len(ids); dispatched++ {
		select {
		case jobs <- dispatched:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)

	// Workers only touch indexes they received; the rest are ours.
	for i := dispatched; i < len(ids); i++ {
		results[i].Err = ctx.Err()
	}
	wg.Wait()

	logger := logging.FromContext(ctx, log.Logger)
	logger.Debug().
		Int("items", len(ids)).
		Int("workers", workers).
		Int("dispatched", dispatched).
		Dur("duration", time.Since(start)).
		Msg("Item fetch complete")

	return results
}

// worker processes indexes from the queue
func (f *ItemFetcher[T]) worker(ctx context.Context, ids []int, jobs <-chan int, results []Result[T], wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range jobs {
		itemCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
		value, err := f.fetch(itemCtx, ids[i])
		cancel()

		results[i].Value = value
		results[i].Err = err
	}
}
