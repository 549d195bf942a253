package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/backoffice/core/cache"
)

type product struct {
	ID    int
	Name  string
	Price float64
}

func listFetcher(calls *atomic.Int32, release <-chan struct{}, list []product) cache.FetchFunc {
	return func(ctx context.Context) (any, []cache.Tag, error) {
		calls.Add(1)
		if release != nil {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}
		tags := []cache.Tag{cache.List("Product")}
		for _, p := range list {
			tags = append(tags, cache.NewTag("Product", p.ID))
		}
		return list, tags, nil
	}
}

func TestQuery_CachesSuccessfulResult(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	var calls atomic.Int32
	fetch := listFetcher(&calls, nil, []product{{ID: 1, Name: "Aspirin"}})

	ctx := context.Background()
	first, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, cache.StatusSuccess, first.Status)

	second, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, int32(1), calls.Load(), "second query must be served from cache")
}

func TestQuery_ConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := listFetcher(&calls, release, []product{{ID: 1}, {ID: 2}})

	const callers = 8
	results := make([]cache.Entry, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := c.Query(context.Background(), "products.list", nil, fetch)
			require.NoError(t, err)
			results[i] = entry
		}(i)
	}

	// Let all callers pile onto the pending fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "exactly one network call for concurrent identical queries")
	for _, entry := range results {
		assert.Equal(t, cache.StatusSuccess, entry.Status)
		assert.Equal(t, results[0].Data, entry.Data)
	}
}

func TestQuery_DistinctArgsAreDistinctKeys(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, []cache.Tag, error) {
		calls.Add(1)
		return "value", []cache.Tag{cache.List("Product")}, nil
	}

	ctx := context.Background()
	_, err := c.Query(ctx, "products.byCategory", 1, fetch)
	require.NoError(t, err)
	_, err = c.Query(ctx, "products.byCategory", 2, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQuery_ErrorIsRecordedAndRetriedOnNextQuery(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	boom := errors.New("upstream exploded")
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, []cache.Tag, error) {
		if calls.Add(1) == 1 {
			return nil, nil, boom
		}
		return "recovered", nil, nil
	}

	ctx := context.Background()
	entry, err := c.Query(ctx, "orders.list", nil, fetch)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, cache.StatusError, entry.Status)

	entry, err = c.Query(ctx, "orders.list", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", entry.Data)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQuery_NoFetcher(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	_, err := c.Query(context.Background(), "products.list", nil, nil)
	assert.ErrorIs(t, err, cache.ErrNoFetcher)
}

func TestInvalidate_ExactAndListMatching(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	// products.list provides per-item tags plus the Product list tag.
	var listCalls atomic.Int32
	_, err := c.Query(ctx, "products.list", nil, listFetcher(&listCalls, nil, []product{{ID: 1}, {ID: 2}}))
	require.NoError(t, err)

	// products.get(2) provides only its item tag.
	_, err = c.Query(ctx, "products.get", 2, func(ctx context.Context) (any, []cache.Tag, error) {
		return product{ID: 2}, []cache.Tag{cache.NewTag("Product", 2)}, nil
	})
	require.NoError(t, err)

	// categories.list has a disjoint tag set and must stay untouched.
	_, err = c.Query(ctx, "categories.list", nil, func(ctx context.Context) (any, []cache.Tag, error) {
		return []string{"Painkillers"}, []cache.Tag{cache.List("Category")}, nil
	})
	require.NoError(t, err)

	c.Invalidate(cache.NewTag("Product", 2))

	entry, ok := c.Entry("products.get", 2)
	require.True(t, ok)
	assert.True(t, entry.Stale, "exact id match must go stale")

	entry, ok = c.Entry("products.list", nil)
	require.True(t, ok)
	assert.True(t, entry.Stale, "list-tagged entry matches any invalidation of its type")

	entry, ok = c.Entry("categories.list", nil)
	require.True(t, ok)
	assert.False(t, entry.Stale, "disjoint tag sets stay untouched")
}

func TestInvalidate_ItemTagDoesNotMatchOtherIDs(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	_, err := c.Query(ctx, "products.get", 1, func(ctx context.Context) (any, []cache.Tag, error) {
		return product{ID: 1}, []cache.Tag{cache.NewTag("Product", 1)}, nil
	})
	require.NoError(t, err)

	c.Invalidate(cache.NewTag("Product", 99))

	entry, ok := c.Entry("products.get", 1)
	require.True(t, ok)
	assert.False(t, entry.Stale)
}

func TestInvalidate_ListTagHitsOnlyListTaggedEntries(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	var listCalls atomic.Int32
	_, err := c.Query(ctx, "products.list", nil, listFetcher(&listCalls, nil, []product{{ID: 1}}))
	require.NoError(t, err)

	_, err = c.Query(ctx, "products.get", 1, func(ctx context.Context) (any, []cache.Tag, error) {
		return product{ID: 1}, []cache.Tag{cache.NewTag("Product", 1)}, nil
	})
	require.NoError(t, err)

	c.Invalidate(cache.List("Product"))

	entry, ok := c.Entry("products.list", nil)
	require.True(t, ok)
	assert.True(t, entry.Stale)

	entry, ok = c.Entry("products.get", 1)
	require.True(t, ok)
	assert.False(t, entry.Stale, "a list invalidation does not fan out to item-tagged entries")
}

func TestMutate_InvalidatesOnSuccessOnly(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	_, err := c.Query(ctx, "products.list", nil, listFetcher(&calls, nil, []product{{ID: 1}}))
	require.NoError(t, err)

	invalidates := func(result any, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.List("Product")}
	}

	// Failed mutation: nothing goes stale.
	_, err = c.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, errors.New("rejected")
	}, invalidates)
	require.Error(t, err)
	entry, _ := c.Entry("products.list", nil)
	assert.False(t, entry.Stale)

	// Successful mutation: list entry goes stale.
	_, err = c.Mutate(ctx, func(ctx context.Context) (any, error) {
		return product{ID: 2}, nil
	}, invalidates)
	require.NoError(t, err)
	entry, _ = c.Entry("products.list", nil)
	assert.True(t, entry.Stale)
}

func TestStaleEntry_RefetchesLazilyOnNextQuery(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fetch := listFetcher(&calls, nil, []product{{ID: 1}})

	_, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)
	c.Invalidate(cache.List("Product"))

	_, err = c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "stale unsubscribed entry refetches on next query")

	entry, _ := c.Entry("products.list", nil)
	assert.False(t, entry.Stale)
}

func TestSubscribedEntry_RefetchesEagerlyOnInvalidation(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fetch := listFetcher(&calls, nil, []product{{ID: 1}})

	_, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)

	cancel, err := c.Subscribe("products.list", nil)
	require.NoError(t, err)
	defer cancel()

	c.Invalidate(cache.List("Product"))

	require.Eventually(t, func() bool {
		entry, ok := c.Entry("products.list", nil)
		return ok && !entry.Stale && entry.Status == cache.StatusSuccess
	}, time.Second, 5*time.Millisecond, "subscribed entry must refetch without another query")
	assert.Equal(t, int32(2), calls.Load())
}

func TestSubscribe_StaleEntryRefetchesImmediately(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fetch := listFetcher(&calls, nil, []product{{ID: 1}})

	_, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)
	c.Invalidate(cache.List("Product"))

	cancel, err := c.Subscribe("products.list", nil)
	require.NoError(t, err)
	defer cancel()

	require.Eventually(t, func() bool {
		entry, ok := c.Entry("products.list", nil)
		return ok && !entry.Stale
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLastIssuedRequestWins(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	// First fetch hangs until released; invalidation with an active
	// subscriber supersedes it with a second fetch that resolves first.
	firstRelease := make(chan struct{})
	var phase atomic.Int32
	fetch := func(ctx context.Context) (any, []cache.Tag, error) {
		n := phase.Add(1)
		tags := []cache.Tag{cache.List("Product")}
		if n == 1 {
			return []product{{ID: 1, Name: "seeded"}}, tags, nil
		}
		if n == 2 {
			<-firstRelease
			return []product{{ID: 1, Name: "slow-old"}}, tags, nil
		}
		return []product{{ID: 1, Name: "fresh"}}, tags, nil
	}

	_, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)

	cancel, err := c.Subscribe("products.list", nil)
	require.NoError(t, err)
	defer cancel()

	// Two invalidations: the first starts the slow fetch, the second
	// supersedes it with the fresh fetch.
	c.Invalidate(cache.List("Product"))
	require.Eventually(t, func() bool { return phase.Load() >= 2 }, time.Second, time.Millisecond)
	c.Invalidate(cache.List("Product"))
	require.Eventually(t, func() bool { return phase.Load() >= 3 }, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		entry, ok := c.Entry("products.list", nil)
		if !ok || entry.Status != cache.StatusSuccess || entry.Stale {
			return false
		}
		list, ok := entry.Data.([]product)
		return ok && list[0].Name == "fresh"
	}, time.Second, 5*time.Millisecond)

	// The slow fetch resolving late must not clobber the fresh result.
	close(firstRelease)
	time.Sleep(50 * time.Millisecond)
	entry, ok := c.Entry("products.list", nil)
	require.True(t, ok)
	list, ok := entry.Data.([]product)
	require.True(t, ok)
	assert.Equal(t, "fresh", list[0].Name)
}

func TestInvalidate_DuringUnsubscribedFetchStaysStale(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	release := make(chan struct{})
	var phase atomic.Int32
	fetch := func(ctx context.Context) (any, []cache.Tag, error) {
		n := phase.Add(1)
		tags := []cache.Tag{cache.List("Product")}
		if n == 2 {
			<-release
			return []product{{ID: 1, Name: "pre-mutation"}}, tags, nil
		}
		return []product{{ID: 1, Name: "fresh"}}, tags, nil
	}

	_, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)

	c.Invalidate(cache.List("Product"))

	// Lazy refetch with no subscriber: the next query starts a fetch that
	// is still reading pre-mutation state when a second invalidation lands.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Query(ctx, "products.list", nil, fetch)
	}()
	require.Eventually(t, func() bool { return phase.Load() == 2 }, time.Second, time.Millisecond)

	c.Invalidate(cache.List("Product"))
	close(release)
	<-done

	entry, ok := c.Entry("products.list", nil)
	require.True(t, ok)
	assert.True(t, entry.Stale, "invalidation during an in-flight fetch must survive its resolution")

	// The next query discards nothing: it fetches post-mutation state.
	latest, err := c.Query(ctx, "products.list", nil, fetch)
	require.NoError(t, err)
	list, isList := latest.Data.([]product)
	require.True(t, isList)
	assert.Equal(t, "fresh", list[0].Name)
	assert.False(t, latest.Stale)
}

func TestEvents_PublishInvalidations(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := c.Events().Subscribe(ctx)
	defer sub.Close()

	c.Invalidate(cache.NewTag("Product", 7), cache.List("Product"))

	select {
	case msg := <-sub.Receive(ctx):
		require.Len(t, msg.Data.Tags, 2)
		assert.Equal(t, cache.NewTag("Product", 7), msg.Data.Tags[0])
	case <-time.After(time.Second):
		t.Fatal("no invalidation event received")
	}
}

func TestReset_DropsEntries(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	var calls atomic.Int32
	_, err := c.Query(context.Background(), "products.list", nil, listFetcher(&calls, nil, nil))
	require.NoError(t, err)

	c.Reset()
	_, ok := c.Entry("products.list", nil)
	assert.False(t, ok)
}

func TestReset_ReleasesInflightCallers(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := listFetcher(&calls, release, []product{{ID: 1}})

	done := make(chan struct{}, 2)
	for range 2 {
		go func() {
			_, _ = c.Query(context.Background(), "products.list", nil, fetch)
			done <- struct{}{}
		}()
	}

	// Drop all entries while the shared fetch is still in flight, then let
	// it resolve against the detached entry.
	time.Sleep(50 * time.Millisecond)
	c.Reset()
	close(release)

	for range 2 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("caller still blocked after the detached fetch resolved")
		}
	}

	// The reset cache is empty; the resolved result did not leak back in.
	_, ok := c.Entry("products.list", nil)
	assert.False(t, ok)
}

func TestFetchAndExec_TypedHelpers(t *testing.T) {
	t.Parallel()

	c := cache.New()
	defer c.Close()
	ctx := context.Background()

	list, err := cache.Fetch(ctx, c, "products.list", nil, func(ctx context.Context) ([]product, []cache.Tag, error) {
		return []product{{ID: 1, Name: "Aspirin"}}, []cache.Tag{cache.List("Product")}, nil
	})
	require.NoError(t, err)
	require.Len(t, list, 1)

	created, err := cache.Exec(ctx, c, func(ctx context.Context) (product, error) {
		return product{ID: 2, Name: "Ibuprofen"}, nil
	}, func(p product, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.List("Product")}
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)

	entry, ok := c.Entry("products.list", nil)
	require.True(t, ok)
	assert.True(t, entry.Stale)
}

func TestGetAs_TypeMismatch(t *testing.T) {
	t.Parallel()

	entry := cache.Entry{Status: cache.StatusSuccess, Data: "a string"}
	_, err := cache.GetAs[int](entry)
	assert.ErrorIs(t, err, cache.ErrTypeMismatch)
}
