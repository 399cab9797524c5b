package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/hn-news-proxy/pkg/logging"
	"github.com/rs/zerolog"
)

// IdentifierSource fetches the current identifier list from upstream.
type IdentifierSource interface {
	NewStoryIDs(ctx context.Context) ([]int, error)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// IdentifierCache serves the newest-stories identifier list from a single
// store slot, refreshing it from upstream when absent or expired.
type IdentifierCache struct {
	source IdentifierSource
	store  Store
	clock  Clock
	key    Key
	ttl    time.Duration
	logger zerolog.Logger
}

// Option configures an IdentifierCache.
type Option func(*IdentifierCache)

// WithStore replaces the default in-memory store.
func WithStore(store Store) Option {
	return func(c *IdentifierCache) {
		if store != nil {
			c.store = store
		}
	}
}

// WithClock replaces the wall clock used for expiry decisions.
func WithClock(clock Clock) Option {
	return func(c *IdentifierCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *IdentifierCache) {
		c.logger = logger
	}
}

// NewIdentifierCache creates a cache in front of source.
func NewIdentifierCache(source IdentifierSource, opts ...Option) *IdentifierCache {
	if source == nil {
		panic("identifier source cannot be nil")
	}

	c := &IdentifierCache{
		source: source,
		store:  NewMemoryStore(),
		clock:  systemClock{},
		key:    NewStoriesKey,
		ttl:    DefaultTTL,
		logger: logging.NewLogger("identifier-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Identifiers returns the cached identifier list, refreshing it from
// upstream on a miss or after expiry. An upstream failure is returned as is
// and nothing is cached.
func (c *IdentifierCache) Identifiers(ctx context.Context) ([]int, error) {
	storeName := c.store.Name()
	logger := logging.FromContext(ctx, c.logger)

	snap, err := c.store.Load(ctx, c.key)
	switch {
	case err == nil && !snap.IsExpired(c.clock.Now()):
		CacheHits.WithLabelValues(storeName).Inc()
		logger.Debug().
			Str("key", c.key.String()).
			Int("count", len(snap.IDs)).
			Dur("ttl", snap.TTL(c.clock.Now())).
			Msg("Identifier cache hit")
		return snap.IDs, nil
	case err != nil && !errors.Is(err, ErrCacheMiss):
		CacheErrors.WithLabelValues("load").Inc()
		logger.Warn().Err(err).Str("store", storeName).Msg("Identifier store load failed")
	}

	CacheMisses.WithLabelValues(storeName).Inc()

	ids, err := c.source.NewStoryIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch identifiers: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}

	now := c.clock.Now()
	fresh := &Snapshot{
		IDs:      ids,
		CachedAt: now,
		Expires:  now.Add(c.ttl),
	}
	if err := c.store.Save(ctx, c.key, fresh); err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		logger.Warn().Err(err).Str("store", storeName).Msg("Identifier store save failed")
	}
	CachedIdentifiers.Set(float64(len(ids)))

	logger.Info().
		Str("key", c.key.String()).
		Int("count", len(ids)).
		Time("expires", fresh.Expires).
		Msg("Identifier list refreshed")

	return ids, nil
}
