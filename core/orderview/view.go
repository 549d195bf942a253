package orderview

import (
	"sync"
	"time"
)

// Filters are the active order filter criteria. The zero value matches
// every order.
type Filters struct {
	// StatusID filters on the order status; nil means all statuses.
	StatusID *int
	// MineOnly keeps orders placed by or accepted by ViewerID.
	MineOnly bool
	// NewOnly keeps orders that no admin has accepted yet.
	NewOnly bool
	// TodayOnly keeps orders created on the current day.
	TodayOnly bool
}

// Fields maps the projected record type to the attributes the filters
// operate on.
type Fields[T any] struct {
	StatusID   func(T) int
	UserID     func(T) int
	AcceptedBy func(T) *int
	CreatedAt  func(T) time.Time
}

// View is a derived projection over the fetched order list, mirroring the
// product projection: the source is replaced wholesale and the filtered
// list is recomputed synchronously on every change.
type View[T any] struct {
	mu       sync.RWMutex
	fields   Fields[T]
	now      func() time.Time
	viewerID int
	all      []T
	filtered []T
	filters  Filters
}

// Option configures a View.
type Option[T any] func(*View[T])

// WithClock overrides the time source used by the today filter.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(v *View[T]) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates an empty order view.
func New[T any](fields Fields[T], opts ...Option[T]) *View[T] {
	v := &View[T]{fields: fields, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetOrders replaces the source list and recomputes the projection.
func (v *View[T]) SetOrders(list []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.all = append([]T(nil), list...)
	v.recompute()
}

// SetViewer sets the admin whose orders the mine-only filter selects.
func (v *View[T]) SetViewer(userID int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewerID = userID
	v.recompute()
}

// SetStatusFilter filters on a status ID; nil clears the filter.
func (v *View[T]) SetStatusFilter(statusID *int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.StatusID = statusID
	v.recompute()
}

// SetMineOnly toggles the "my orders" filter.
func (v *View[T]) SetMineOnly(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.MineOnly = on
	v.recompute()
}

// SetNewOnly toggles the "unaccepted orders" filter.
func (v *View[T]) SetNewOnly(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.NewOnly = on
	v.recompute()
}

// SetTodayOnly toggles the "today's orders" filter.
func (v *View[T]) SetTodayOnly(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.TodayOnly = on
	v.recompute()
}

// Reset clears all filters; the projection becomes the full source list.
func (v *View[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = Filters{}
	v.recompute()
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

// recompute rebuilds filtered from all. Caller holds the write lock.
func (v *View[T]) recompute() {
	var today time.Time
	if v.filters.TodayOnly {
		y, m, d := v.now().Date()
		today = time.Date(y, m, d, 0, 0, 0, 0, v.now().Location())
	}

	out := make([]T, 0, len(v.all))
	for _, order := range v.all {
		if v.filters.StatusID != nil && v.fields.StatusID(order) != *v.filters.StatusID {
			continue
		}
		if v.filters.MineOnly {
			acceptedBy := v.fields.AcceptedBy(order)
			mine := v.fields.UserID(order) == v.viewerID ||
				(acceptedBy != nil && *acceptedBy == v.viewerID)
			if !mine {
				continue
			}
		}
		if v.filters.NewOnly && v.fields.AcceptedBy(order) != nil {
			continue
		}
		if v.filters.TodayOnly {
			created := v.fields.CreatedAt(order).In(today.Location())
			if created.Before(today) || !created.Before(today.AddDate(0, 0, 1)) {
				continue
			}
		}
		out = append(out, order)
	}
	v.filtered = out
}
