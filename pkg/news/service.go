// Package news assembles pages of the newest Hacker News stories.
//
// A page is built by reading the cached identifier list, slicing the
// requested page, resolving each identifier concurrently and filtering the
// resolved items by title. Every failure degrades the result instead of
// surfacing as an error:
//
//   - identifier list unavailable: empty response with total 0
//   - single item unavailable: item omitted, no backfill
//   - unexpected panic: empty response with total 0
//
// Callers cannot tell an empty page from an upstream outage.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/hn-news-proxy/pkg/logging"
	"github.com/Sternrassler/hn-news-proxy/pkg/pagination"
	"github.com/rs/zerolog"
)

// IdentifierProvider returns the current identifier list, newest first.
type IdentifierProvider interface {
	Identifiers(ctx context.Context) ([]int, error)
}

// ItemSource decodes the upstream record for id into v.
type ItemSource interface {
	Item(ctx context.Context, id int, v any) error
}

// Service is the aggregation service.
type Service struct {
	ids     IdentifierProvider
	items   ItemSource
	fetcher *pagination.ItemFetcher[*Item]
	logger  zerolog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	fetch  pagination.Config
	logger zerolog.Logger
}

// WithFetchConfig sets the item fan-out configuration.
func WithFetchConfig(cfg pagination.Config) Option {
	return func(o *serviceOptions) {
		o.fetch = cfg
	}
}

// WithLogger sets the logger used when no request-scoped logger is present.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService creates the aggregation service.
func NewService(ids IdentifierProvider, items ItemSource, opts ...Option) *Service {
	if ids == nil || items == nil {
		panic("news: identifier provider and item source are required")
	}

	o := serviceOptions{
		fetch:  pagination.DefaultConfig(),
		logger: logging.NewLogger("news-service"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service{
		ids:    ids,
		items:  items,
		logger: o.logger,
	}
	s.fetcher = pagination.NewItemFetcher(s.fetchItem, o.fetch)
	return s
}

// FetchPage returns one page of stories, optionally filtered by a title
// substring. page and pageSize are not validated: pages past the end are
// empty and a non-positive pageSize yields no items. FetchPage never fails.
func (s *Service) FetchPage(ctx context.Context, page, pageSize int, search string) (resp Response) {
	start := time.Now()
	logger := logging.FromContext(ctx, s.logger)

	defer func() {
		if r := recover(); r != nil {
			degradedResponsesTotal.WithLabelValues("panic").Inc()
			logger.Error().
				Interface("panic", r).
				Str("operation", "FetchPage").
				Int("page", page).
				Int("page_size", pageSize).
				Str("search", search).
				Msg("Recovered panic while assembling page")
			resp = emptyResponse()
		}
		fetchPageDuration.Observe(time.Since(start).Seconds())
	}()

	ids, err := s.ids.Identifiers(ctx)
	if err != nil {
		degradedResponsesTotal.WithLabelValues("identifiers").Inc()
		logger.Error().
			Err(err).
			Str("operation", "FetchPage").
			Int("page", page).
			Int("page_size", pageSize).
			Str("search", search).
			Msg("Identifier list unavailable, returning empty page")
		return emptyResponse()
	}

	pageIDs := pagination.Slice(ids, page, pageSize)
	items := s.resolve(logging.WithContext(ctx, logger), logger, pageIDs)
	items = FilterByTitle(items, search)

	pagesServedTotal.Inc()
	logger.Debug().
		Int("page", page).
		Int("page_size", pageSize).
		Str("search", search).
		Int("total", len(ids)).
		Int("requested", len(pageIDs)).
		Int("returned", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Page assembled")

	return Response{Total: len(ids), Items: items}
}

// resolve fetches pageIDs and drops the ones that failed, keeping slice order.
func (s *Service) resolve(ctx context.Context, logger zerolog.Logger, pageIDs []int) []Item {
	results := s.fetcher.FetchAll(ctx, pageIDs)

	items := make([]Item, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Value == nil {
			itemsOmittedTotal.Inc()
			logger.Warn().
				Err(r.Err).
				Str("operation", "resolveItem").
				Int("item_id", r.ID).
				Msg("Item could not be resolved, omitting")
			continue
		}
		items = append(items, *r.Value)
	}
	return items
}

// fetchItem resolves one identifier. It runs on a worker goroutine, so a
// panic is turned into an error here rather than escaping the pool.
func (s *Service) fetchItem(ctx context.Context, id int) (item *Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, err = nil, fmt.Errorf("item %d: panic: %v", id, r)
		}
	}()

	var it Item
	if err := s.items.Item(ctx, id, &it); err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	return &it, nil
}
