package cache

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/pharmakit/backoffice/core/logger"
	"github.com/pharmakit/backoffice/pkg/broadcast"
)

// Status describes the lifecycle state of a cache entry.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusSuccess       Status = "success"
	StatusError         Status = "error"
)

// FetchFunc loads the value for one cache key together with the tags the
// resulting entry provides.
type FetchFunc func(ctx context.Context) (any, []Tag, error)

// InvalidateFunc maps a mutation outcome to the tags it invalidates.
// Returning nil on the error path keeps the conventional behavior of
// failed mutations invalidating nothing.
type InvalidateFunc func(result any, err error) []Tag

// KeyFunc computes the cache key for an endpoint and its arguments.
type KeyFunc func(endpoint string, args any) (string, error)

// Entry is an immutable snapshot of one cache entry.
type Entry struct {
	Key    string
	Status Status
	Data   any
	Err    error
	Tags   []Tag
	Stale  bool
}

// InvalidationEvent is published on every invalidation so subscribers
// (for example, connected UI clients) know which reads are outdated.
type InvalidationEvent struct {
	Tags []Tag    `json:"tags"`
	Keys []string `json:"keys,omitempty"`
}

// entry is the mutable cache record. All fields are guarded by Cache.mu.
type entry struct {
	key      string
	status   Status
	data     any
	err      error
	tags     []Tag
	stale    bool
	seq      uint64        // sequence of the most recently issued fetch
	inflight chan struct{} // closed when the current fetch resolves
	fetch    FetchFunc     // latest fetch, reused for refetches
	subs     int
}

func (e *entry) snapshot() Entry {
	return Entry{
		Key:    e.key,
		Status: e.status,
		Data:   e.data,
		Err:    e.err,
		Tags:   append([]Tag(nil), e.tags...),
		Stale:  e.stale,
	}
}

// beginFetch transitions the entry to loading and issues a new fetch
// sequence, superseding any fetch still in flight. Prior data is kept
// visible while the refetch runs.
func (e *entry) beginFetch() (uint64, chan struct{}) {
	e.seq++
	e.status = StatusLoading
	e.inflight = make(chan struct{})
	return e.seq, e.inflight
}

// Cache is a request-deduplicating, tag-invalidating read cache. It is the
// single point of truth for remote reads: at most one fetch is in flight
// per key, concurrent callers share the pending result, and mutations mark
// intersecting entries stale so they are refetched eagerly (when
// subscribed) or lazily on the next query.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	keyFn   KeyFunc
	log     *slog.Logger
	events  *broadcast.MemoryBroadcaster[InvalidationEvent]
}

// Option is a functional option for configuring the cache.
type Option func(*Cache)

// WithLogger sets the logger for cache internals.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithKeyFunc overrides argument normalization for cache keys.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.keyFn = fn
		}
	}
}

// WithEventBuffer sets the per-subscriber buffer for invalidation events.
func WithEventBuffer(size int) Option {
	return func(c *Cache) {
		c.events = broadcast.NewMemoryBroadcaster[InvalidationEvent](size)
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		keyFn:   defaultKey,
		log:     logger.Discard(),
		events:  broadcast.NewMemoryBroadcaster[InvalidationEvent](64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the invalidation event broadcaster.
func (c *Cache) Close() error {
	return c.events.Close()
}

// Events exposes the invalidation event stream.
func (c *Cache) Events() broadcast.Broadcaster[InvalidationEvent] {
	return c.events
}

// Query returns the cached entry for (endpoint, args), fetching it if
// needed. A fresh successful entry is returned without network I/O. If a
// fetch for the same key is already in flight, the caller attaches to it
// instead of issuing a duplicate request; all attached callers observe the
// same resolved entry. Stale or failed entries trigger a new fetch.
//
// The returned error mirrors the entry's Err field so callers can use
// either. Fetch failures are recorded on the entry and never retried by
// the cache itself.
func (c *Cache) Query(ctx context.Context, endpoint string, args any, fetch FetchFunc) (Entry, error) {
	key, err := c.keyFn(endpoint, args)
	if err != nil {
		return Entry{}, err
	}

	c.mu.Lock()
	e := c.ensureLocked(key)
	if fetch != nil {
		e.fetch = fetch
	}

	if e.status == StatusSuccess && !e.stale {
		snap := e.snapshot()
		c.mu.Unlock()
		return snap, nil
	}

	if e.inflight == nil {
		run := e.fetch
		if run == nil {
			c.mu.Unlock()
			return Entry{}, ErrNoFetcher
		}
		seq, ch := e.beginFetch()
		c.mu.Unlock()

		data, tags, ferr := run(ctx)
		c.resolve(e, seq, ch, data, tags, ferr)

		c.mu.Lock()
	}

	return c.awaitLocked(ctx, e)
}

// awaitLocked waits until no fetch is in flight for the entry and returns
// the settled snapshot. Must be called with c.mu held; releases it.
func (c *Cache) awaitLocked(ctx context.Context, e *entry) (Entry, error) {
	for e.inflight != nil {
		ch := e.inflight
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		}
		c.mu.Lock()
	}
	snap := e.snapshot()
	c.mu.Unlock()
	return snap, snap.Err
}

// resolve applies a fetch result to the entry. Resolutions that were
// superseded by a newer fetch sequence are discarded, so the last issued
// request always wins regardless of response arrival order. The entry
// pointer is used directly rather than a key lookup: the entry may have
// been detached by Reset, and its waiters must still be released.
func (c *Cache) resolve(e *entry, seq uint64, ch chan struct{}, data any, tags []Tag, err error) {
	c.mu.Lock()
	if e.inflight == ch {
		e.inflight = nil
	}
	switch {
	case seq != e.seq:
		c.log.Debug("discarded out-of-order fetch result", logger.CacheKey(e.key))
	case err != nil:
		e.status = StatusError
		e.err = err
	default:
		e.status = StatusSuccess
		e.data = data
		e.tags = tags
		e.err = nil
		e.stale = false
	}
	c.mu.Unlock()
	close(ch)
}

// Mutate executes a write against the upstream. Mutations are never cached
// or deduplicated. On completion the declared invalidation tags are
// computed and every intersecting entry is marked stale; stale entries
// with active subscribers refetch immediately in the background.
func (c *Cache) Mutate(ctx context.Context, do func(ctx context.Context) (any, error), invalidates InvalidateFunc) (any, error) {
	result, err := do(ctx)
	if invalidates != nil {
		if tags := invalidates(result, err); len(tags) > 0 {
			c.Invalidate(tags...)
		}
	}
	return result, err
}

// Invalidate marks every entry whose tag set intersects the given tags as
// stale and publishes an invalidation event. Entries with active
// subscribers are refetched immediately; the rest refetch lazily on their
// next query or subscription.
func (c *Cache) Invalidate(tags ...Tag) {
	if len(tags) == 0 {
		return
	}

	c.mu.Lock()
	var hit []string
	for _, e := range c.entries {
		if !matchesAny(e.tags, tags) {
			continue
		}
		e.stale = true
		hit = append(hit, e.key)
		switch {
		case e.subs > 0 && e.fetch != nil:
			c.refetchLocked(e)
		case e.inflight != nil:
			// A fetch issued before the mutation is in flight; advance the
			// sequence so its pre-mutation result is discarded on arrival
			// and the entry stays stale for the next query.
			e.seq++
		}
	}
	c.mu.Unlock()

	sort.Strings(hit)
	c.log.Debug("cache invalidated", logger.Count("tags", len(tags)), logger.Count("entries", len(hit)))
	_ = c.events.Broadcast(context.Background(), broadcast.NewMessage(InvalidationEvent{Tags: tags, Keys: hit}))
}

// refetchLocked starts a background fetch for the entry, superseding any
// fetch still in flight. Must be called with c.mu held.
func (c *Cache) refetchLocked(e *entry) {
	seq, ch := e.beginFetch()
	fetch := e.fetch
	go func() {
		// Detached from the triggering request: a mutation's context ending
		// must not cancel refreshes observed by other subscribers.
		data, tags, err := fetch(context.Background())
		c.resolve(e, seq, ch, data, tags, err)
	}()
}

// Subscribe registers interest in a key, driving eager refetch when the
// entry is invalidated. A stale entry refetches immediately upon
// subscription. The returned cancel function is idempotent.
func (c *Cache) Subscribe(endpoint string, args any) (cancel func(), err error) {
	key, err := c.keyFn(endpoint, args)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	e := c.ensureLocked(key)
	e.subs++
	if e.stale && e.inflight == nil && e.fetch != nil {
		c.refetchLocked(e)
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			e.subs--
			c.mu.Unlock()
		})
	}, nil
}

// Entry returns a snapshot of the entry for (endpoint, args) without
// triggering any fetch.
func (c *Cache) Entry(endpoint string, args any) (Entry, bool) {
	key, err := c.keyFn(endpoint, args)
	if err != nil {
		return Entry{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return e.snapshot(), true
}

// Reset drops all cached entries. Used on logout so no authenticated reads
// survive the session.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

func (c *Cache) ensureLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key, status: StatusUninitialized}
		c.entries[key] = e
	}
	return e
}
