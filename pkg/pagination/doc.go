// Package pagination selects a page of identifiers and resolves it with a
// bounded worker pool.
//
// Example usage:
//
//	pageIDs := pagination.Slice(ids, page, pageSize)
//	fetcher := pagination.NewItemFetcher(fetchItem, pagination.DefaultConfig())
//	results := fetcher.FetchAll(ctx, pageIDs)
//
// The item fetcher:
//   - Spawns at most MaxConcurrency workers (never more than the page size)
//   - Applies a per-item timeout derived from the caller's context
//   - Returns one Result per identifier, in input order
//   - Marks identifiers never dispatched because of cancellation with ctx.Err()
package pagination
