package productview

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects the ordering of the filtered projection.
type SortOption string

const (
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
)

// DefaultSort is the initial sort option reported by Sort. No ordering is
// applied to the projection until SortProducts is called; until then the
// filtered list keeps the source order.
const DefaultSort = SortNameAsc

// Filters are the active filter criteria. Nil pointer fields mean the
// criterion is unset.
type Filters struct {
	CategoryID  *int
	SearchQuery string
	MinPrice    *float64
	MaxPrice    *float64
}

// Fields maps the projected record type to the attributes the filters and
// sort options operate on.
type Fields[T any] struct {
	Name        func(T) string
	Description func(T) string
	Price       func(T) float64
	CategoryID  func(T) int
}

// View is a derived, filterable, sortable projection over a product list.
// The source list is replaced wholesale by SetProducts; the filtered list
// is always recomputed from the source, never merged incrementally.
//
// By default every filter-field setter recomputes the projection
// immediately, so the filtered list can never silently lag the criteria.
// WithManualRecompute restores the batching behavior where setters only
// record criteria and the caller applies them with one ApplyFilters call.
type View[T any] struct {
	mu       sync.RWMutex
	fields   Fields[T]
	all      []T
	filtered []T
	filters  Filters
	sortOpt  SortOption
	sorted   bool
	manual   bool
	coll     *collate.Collator
}

// Option configures a View.
type Option func(*viewConfig)

type viewConfig struct {
	manual bool
	tag    language.Tag
}

// WithManualRecompute disables automatic recomputation on filter-field
// changes; the caller batches criteria and invokes ApplyFilters once.
func WithManualRecompute() Option {
	return func(c *viewConfig) { c.manual = true }
}

// WithCollation sets the language used for name ordering. The default is
// language-neutral collation.
func WithCollation(tag language.Tag) Option {
	return func(c *viewConfig) { c.tag = tag }
}

// New creates an empty view. All four field accessors must be set.
func New[T any](fields Fields[T], opts ...Option) *View[T] {
	cfg := viewConfig{tag: language.Und}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &View[T]{
		fields:  fields,
		sortOpt: DefaultSort,
		manual:  cfg.manual,
		coll:    collate.New(cfg.tag),
	}
}

// SetProducts replaces the source list. In automatic mode active filters
// are reapplied to the new list; in manual mode the filtered list is reset
// to the full list and the caller decides when to reapply.
func (v *View[T]) SetProducts(list []T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.all = append([]T(nil), list...)
	if v.manual {
		v.filtered = append([]T(nil), v.all...)
		return
	}
	v.recompute()
}

// ApplyFilters recomputes the filtered list from the source using the
// current criteria. Idempotent for unchanged criteria and source.
func (v *View[T]) ApplyFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
}

// SetCategoryFilter sets or clears (nil) the category criterion.
func (v *View[T]) SetCategoryFilter(categoryID *int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.CategoryID = categoryID
	if !v.manual {
		v.recompute()
	}
}

// SetSearchQuery sets the case-insensitive name/description search text.
func (v *View[T]) SetSearchQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.SearchQuery = query
	if !v.manual {
		v.recompute()
	}
}

// SetPriceRange sets the inclusive price bounds; nil clears a bound.
func (v *View[T]) SetPriceRange(minPrice, maxPrice *float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.MinPrice = minPrice
	v.filters.MaxPrice = maxPrice
	if !v.manual {
		v.recompute()
	}
}

// SortProducts sets the sort option and re-sorts the filtered list in
// place. Sorting is stable: records comparing equal keep their relative
// order. Once called, subsequent recomputes keep the chosen ordering.
func (v *View[T]) SortProducts(opt SortOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortOpt = opt
	v.sorted = true
	v.sortFiltered()
}

// ResetFilters restores the default criteria and sets the filtered list to
// the full source list, bypassing the filter predicate entirely.
func (v *View[T]) ResetFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = Filters{}
	v.filtered = append([]T(nil), v.all...)
}

// All returns a copy of the source list.
func (v *View[T]) All() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]T(nil), v.all...)
}

// Filtered returns a copy of the current projection.
func (v *View[T]) Filtered() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]T(nil), v.filtered...)
}

// CurrentFilters returns the active criteria.
func (v *View[T]) CurrentFilters() Filters {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filters
}

// Sort returns the active sort option.
func (v *View[T]) Sort() SortOption {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sortOpt
}

// recompute rebuilds filtered from all. Caller holds the write lock.
func (v *View[T]) recompute() {
	query := strings.ToLower(v.filters.SearchQuery)

	out := make([]T, 0, len(v.all))
	for _, item := range v.all {
		if v.filters.CategoryID != nil && v.fields.CategoryID(item) != *v.filters.CategoryID {
			continue
		}
		if query != "" {
			name := strings.ToLower(v.fields.Name(item))
			desc := strings.ToLower(v.fields.Description(item))
			if !strings.Contains(name, query) && !strings.Contains(desc, query) {
				continue
			}
		}
		price := v.fields.Price(item)
		if v.filters.MinPrice != nil && price < *v.filters.MinPrice {
			continue
		}
		if v.filters.MaxPrice != nil && price > *v.filters.MaxPrice {
			continue
		}
		out = append(out, item)
	}
	v.filtered = out
	// Filtering preserves source order; only an explicit SortProducts call
	// introduces an ordering.
	if v.sorted {
		v.sortFiltered()
	}
}

// sortFiltered orders filtered by the active option. Caller holds the
// write lock.
func (v *View[T]) sortFiltered() {
	switch v.sortOpt {
	case SortPriceAsc:
		sort.SliceStable(v.filtered, func(i, j int) bool {
			return v.fields.Price(v.filtered[i]) < v.fields.Price(v.filtered[j])
		})
	case SortPriceDesc:
		sort.SliceStable(v.filtered, func(i, j int) bool {
			return v.fields.Price(v.filtered[i]) > v.fields.Price(v.filtered[j])
		})
	case SortNameAsc:
		sort.SliceStable(v.filtered, func(i, j int) bool {
			return v.coll.CompareString(v.fields.Name(v.filtered[i]), v.fields.Name(v.filtered[j])) < 0
		})
	case SortNameDesc:
		sort.SliceStable(v.filtered, func(i, j int) bool {
			return v.coll.CompareString(v.fields.Name(v.filtered[i]), v.fields.Name(v.filtered[j])) > 0
		})
	}
}
