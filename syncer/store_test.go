package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDedupesConcurrentCalls(t *testing.T) {
	store := NewStore(2 * time.Second)

	var fetchCount int64
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt64(&fetchCount, 1)
		time.Sleep(50 * time.Millisecond) // keep the first call in flight
		return "value", nil
	}

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, _, err := store.Fetch(context.Background(), "key", fetch)
			assert.Nil(t, err)
			assert.Equal(t, "value", data)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&fetchCount),
		"Concurrent fetches of the same key should collapse into one call")
}

func TestFetchServesFreshEntryWithoutRefetching(t *testing.T) {
	store := NewStore(2 * time.Second)

	var fetchCount int64
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt64(&fetchCount, 1)
		return "value", nil
	}

	for i := 0; i < 5; i++ {
		_, stale, err := store.Fetch(context.Background(), "key", fetch)
		require.Nil(t, err)
		assert.False(t, stale)
	}

	assert.EqualValues(t, 1, atomic.LoadInt64(&fetchCount),
		"Reads within the dedupe window should not refetch")
}

func TestFetchRevalidatesStaleEntryInBackground(t *testing.T) {
	store := NewStore(2 * time.Second)

	var fetchCount int64
	fetch := func(ctx context.Context) (interface{}, error) {
		count := atomic.AddInt64(&fetchCount, 1)
		if count == 1 {
			return "first", nil
		}
		return "second", nil
	}

	_, stale, err := store.Fetch(context.Background(), "key", fetch)
	require.Nil(t, err)
	require.False(t, stale)

	// Age the entry past the freshness window
	store.clockNow = func() time.Time { return time.Now().Add(5 * time.Second) }

	data, stale, err := store.Fetch(context.Background(), "key", fetch)
	require.Nil(t, err)
	assert.Equal(t, "first", data, "Stale data should be served immediately")
	assert.True(t, stale)

	// Wait for the background revalidation to land
	assert.Eventually(t, func() bool {
		data, _, ok := store.Get("key")
		return ok && data == "second"
	}, time.Second, 10*time.Millisecond, "The background revalidation should replace the stale entry")
}

func TestUpdatePreservesFetchedAt(t *testing.T) {
	store := NewStore(2 * time.Second)
	store.Set("key", []int{1, 2})

	_, fetchedAt, ok := store.Get("key")
	require.True(t, ok)

	store.Update("key", func(cached interface{}) interface{} {
		return append(cached.([]int), 3)
	})

	data, updatedAt, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, data)
	assert.Equal(t, fetchedAt, updatedAt, "Patching an entry should not reset its revalidation schedule")
}

func TestUpdateIgnoresMissingKey(t *testing.T) {
	store := NewStore(2 * time.Second)

	store.Update("nope", func(cached interface{}) interface{} {
		t.Fatal("update fn should not run for a missing key")
		return nil
	})

	_, _, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	store := NewStore(2 * time.Second)
	store.Set("customers", "a")
	store.Set("customers:search:smith", "b")
	store.Set("customers:search:ross", "c")
	store.Set("reminders:analytics", "d")

	store.InvalidatePrefix("customers:search:")

	_, _, ok := store.Get("customers:search:smith")
	assert.False(t, ok)
	_, _, ok = store.Get("customers:search:ross")
	assert.False(t, ok)

	_, _, ok = store.Get("customers")
	assert.True(t, ok, "Entries outside the prefix should survive")
	_, _, ok = store.Get("reminders:analytics")
	assert.True(t, ok)
}

func TestFetchErrorLeavesNoEntry(t *testing.T) {
	store := NewStore(2 * time.Second)

	_, _, err := store.Fetch(context.Background(), "key", func(ctx context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, _, ok := store.Get("key")
	assert.False(t, ok, "A failed fetch should not populate the cache")
}
