package syncer

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultDedupeWindow is how long a fetched value is considered fresh
// enough to serve without touching the network again. Concurrent
// requests for the same key inside the window collapse into a
// single call.
const DefaultDedupeWindow = 2 * time.Second

type FetchFunc func(ctx context.Context) (interface{}, error)

type entry struct {
	data      interface{}
	fetchedAt time.Time
}

// Store is the process-wide keyed cache every read & mutation goes
// through. It lives for the lifetime of the app & is the single
// source of truth components derive their state from.
type Store struct {
	mu       sync.Mutex
	entries  map[string]entry
	group    singleflight.Group
	freshFor time.Duration
	clockNow func() time.Time
}

func NewStore(dedupeWindow time.Duration) *Store {
	if dedupeWindow <= 0 {
		dedupeWindow = DefaultDedupeWindow
	}

	return &Store{
		entries:  make(map[string]entry),
		freshFor: dedupeWindow,
		clockNow: time.Now,
	}
}

// Get returns the cached value for key & when it was fetched.
func (s *Store) Get(key string) (interface{}, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return cached.data, cached.fetchedAt, true
}

func (s *Store) Set(key string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{data: data, fetchedAt: s.clockNow()}
}

// Update applies fn to the cached value for key, if present. The
// fetchedAt stamp is preserved so a patched entry still revalidates
// on its original schedule.
func (s *Store) Update(key string, fn func(interface{}) interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.entries[key]
	if !ok {
		return
	}
	s.entries[key] = entry{data: fn(cached.data), fetchedAt: cached.fetchedAt}
}

func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
}

// InvalidatePrefix drops every entry whose key starts with prefix,
// e.g. all cached search results.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Fetch is the stale-while-revalidate read path:
//   - a fresh enough entry is returned as-is, no network call
//   - a stale entry is returned immediately while a revalidation runs
//     in the background
//   - a missing entry blocks on the fetch
//
// In every case concurrent fetches for the same key share one
// underlying call via singleflight.
func (s *Store) Fetch(ctx context.Context, key string, fn FetchFunc) (data interface{}, stale bool, err error) {
	s.mu.Lock()
	cached, ok := s.entries[key]
	fresh := ok && s.clockNow().Sub(cached.fetchedAt) <= s.freshFor
	s.mu.Unlock()

	if fresh {
		return cached.data, false, nil
	}

	if ok {
		s.revalidate(key, fn)
		return cached.data, true, nil
	}

	data, err, _ = s.group.Do(key, func() (interface{}, error) {
		fetched, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, fetched)
		return fetched, nil
	})
	if err != nil {
		return nil, false, err
	}

	return data, false, nil
}

// Revalidate forces a blocking refetch of key, replacing whatever is
// cached. Used by manual refreshes & by mutations that need the
// affected collection up to date before they return.
func (s *Store) Revalidate(ctx context.Context, key string, fn FetchFunc) (interface{}, error) {
	data, err, _ := s.group.Do(key, func() (interface{}, error) {
		fetched, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, fetched)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// revalidate refreshes key in the background. The triggering caller
// already has stale data to show, so errors only mean the cache stays
// stale until the next read.
func (s *Store) revalidate(key string, fn FetchFunc) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.group.Do(key, func() (interface{}, error) {
			fetched, err := fn(ctx)
			if err != nil {
				return nil, err
			}
			s.Set(key, fetched)
			return fetched, nil
		})
	}()
}
