// Package productview maintains a derived, filterable, sortable projection
// over the product catalog.
//
// The view holds the full product list as its source of truth and a
// filtered list recomputed from it, never merged incrementally. The four
// filter criteria (category, search text, inclusive price bounds) are
// ANDed; search matches case-insensitively against name or description.
// Name ordering uses locale-aware collation and all sorts are stable.
//
// The view is generic over the record type; callers describe the record
// with field accessors:
//
//	view := productview.New(productview.Fields[marketplace.Product]{
//		Name:        func(p marketplace.Product) string { return p.Name },
//		Description: func(p marketplace.Product) string { return p.Description },
//		Price:       func(p marketplace.Product) float64 { return p.Price },
//		CategoryID:  func(p marketplace.Product) int { return p.CategoryID },
//	})
//
//	view.SetProducts(list)
//	view.SetSearchQuery("aspirin")
//	view.SortProducts(productview.SortPriceAsc)
//	rows := view.Filtered()
//
// Filter-field setters recompute the projection immediately, so the
// filtered list cannot silently lag the criteria. Callers that prefer to
// batch several criteria changes before one recomputation can opt into
// WithManualRecompute and call ApplyFilters themselves.
package productview
