// Package cache provides a declarative request/response cache keyed by
// endpoint and arguments, with tag-based invalidation and
// subscription-driven refetching. It is the single point of truth for all
// remote reads in the backoffice: queries deduplicate concurrent fetches
// per key, mutations invalidate every cached read whose tags intersect the
// mutation's declared tag set.
//
// # Queries
//
// A query is identified by its endpoint name and the canonical JSON
// encoding of its arguments. The first caller for a key performs the
// fetch; concurrent callers for the same key attach to the pending fetch
// instead of issuing duplicates, and all observe the same resolved entry:
//
//	products, err := cache.Fetch(ctx, c, "products.list", nil,
//		func(ctx context.Context) ([]Product, []cache.Tag, error) {
//			list, err := api.Products(ctx)
//			if err != nil {
//				return nil, nil, err
//			}
//			tags := []cache.Tag{cache.List("Product")}
//			for _, p := range list {
//				tags = append(tags, cache.NewTag("Product", p.ID))
//			}
//			return list, tags, nil
//		})
//
// # Mutations and invalidation
//
// Mutations are never cached. On completion they declare the tags they
// invalidate; entries whose tag set intersects are marked stale:
//
//	_, err := cache.Exec(ctx, c,
//		func(ctx context.Context) (Product, error) { return api.CreateProduct(ctx, req) },
//		func(_ Product, err error) []cache.Tag {
//			if err != nil {
//				return nil // failed writes invalidate nothing
//			}
//			return []cache.Tag{cache.List("Product")}
//		})
//
// A stale entry is not evicted: it refetches eagerly when it has active
// subscribers, otherwise lazily on its next query or subscription. An
// entry carrying the list tag for a type is treated as depending on every
// item of that type: any invalidation of the type hits it.
//
// # Ordering
//
// Each key carries a monotonic fetch sequence. A fetch result that arrives
// after a newer fetch was issued for the same key is discarded, so rapid
// re-queries settle on the response of the most recently issued request.
//
// Fetch failures are recorded on the entry and surfaced to all attached
// callers; the cache never retries on its own.
package cache
