package syncer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clientelehq/clientele/client"
	"github.com/clientelehq/clientele/logger"
	"github.com/clientelehq/clientele/shared"
	"github.com/clientelehq/clientele/views"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is both the sync layer's session check & the API
// client's token source.
type fakeSession struct {
	signedIn bool
}

func (s fakeSession) SignedIn() bool {
	return s.signedIn
}

func (s fakeSession) Token(ctx context.Context) (string, error) {
	if !s.signedIn {
		return "", client.ErrNoToken
	}
	return "test-token", nil
}

var testCustomers = []client.Customer{
	{
		ID: "c-1", FirstName: "Jessica", LastName: "Pearson", Email: "jessica@pearson.com",
		Phones: []client.Phone{{ID: "p-1", Number: "+14165550011", Designation: client.PhoneWork}},
	},
	{
		ID: "c-2", FirstName: "Harold", LastName: "Smith", Email: "harold@example.com",
		Phones: []client.Phone{{ID: "p-2", Number: "+14165550022", Designation: client.PhoneMobile}},
	},
}

type fixture struct {
	server    *httptest.Server
	store     *Store
	queries   *Queries
	mutations *Mutations
	pending   *Pending
	notices   *[]string
	requests  *int64
}

func newFixture(t *testing.T, router *mux.Router, signedIn bool) fixture {
	t.Helper()

	var requests int64
	counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		router.ServeHTTP(w, r)
	})

	server := httptest.NewServer(counted)
	t.Cleanup(server.Close)

	session := fakeSession{signedIn: signedIn}
	logg := logger.NewNopLogger()
	api := client.NewClient(shared.APIConfig{BaseURL: server.URL}, session, logg)

	store := NewStore(2 * time.Second)
	pending := NewPending()
	queries := NewQueries(api, store, session, logg)

	notices := []string{}
	notifier := NotifierFunc(func(msg string) { notices = append(notices, msg) })
	mutations := NewMutations(api, store, session, pending, notifier, logg)

	return fixture{
		server:    server,
		store:     store,
		queries:   queries,
		mutations: mutations,
		pending:   pending,
		notices:   &notices,
		requests:  &requests,
	}
}

func customersRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testCustomers)
	}).Methods("GET")
	return router
}

func TestCustomersServedFromCacheWithinWindow(t *testing.T) {
	f := newFixture(t, customersRouter(), true)

	for i := 0; i < 4; i++ {
		snapshot := f.queries.Customers(context.Background())
		require.Nil(t, snapshot.Err)
		assert.Len(t, snapshot.Data, 2)
	}

	assert.EqualValues(t, 1, atomic.LoadInt64(f.requests),
		"Repeated reads inside the dedupe window should hit the network once")
}

func TestConcurrentCustomersReadsShareOneCall(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(testCustomers)
	})
	f := newFixture(t, router, true)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot := f.queries.Customers(context.Background())
			assert.Nil(t, snapshot.Err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(f.requests))
}

func TestReadsAreSkippedWhenSignedOut(t *testing.T) {
	f := newFixture(t, customersRouter(), false)

	snapshot := f.queries.Customers(context.Background())
	assert.True(t, snapshot.Skipped, "Unauthenticated reads should be suppressed, not attempted")
	assert.Nil(t, snapshot.Err)
	assert.Empty(t, snapshot.Data)
	assert.EqualValues(t, 0, atomic.LoadInt64(f.requests))
}

func TestScopedReadsAreSkippedWithoutAnID(t *testing.T) {
	f := newFixture(t, customersRouter(), true)

	snapshot := f.queries.Notes(context.Background(), "")
	assert.True(t, snapshot.Skipped, "A missing scope id should suppress the fetch entirely")
	assert.EqualValues(t, 0, atomic.LoadInt64(f.requests))
}

func TestSearchFallsBackToCachedFilterOnNetworkError(t *testing.T) {
	f := newFixture(t, customersRouter(), true)

	// Prime the full customer list, then take the backend away
	snapshot := f.queries.Customers(context.Background())
	require.Nil(t, snapshot.Err)
	f.server.Close()

	results := f.queries.SearchCustomers(context.Background(), "SMITH")
	require.Nil(t, results.Err, "The fallback should absorb the search failure")
	require.Len(t, results.Data, 1)
	assert.Equal(t, "c-2", results.Data[0].ID, "Case-insensitive match on last name")

	byPhone := f.queries.SearchCustomers(context.Background(), "5550011")
	require.Len(t, byPhone.Data, 1)
	assert.Equal(t, "c-1", byPhone.Data[0].ID, "Phone numbers participate in the fallback match")
}

func TestSearchDoesNotFallBackOnEmptyResult(t *testing.T) {
	router := customersRouter()
	router.HandleFunc("/customers/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.Customer{})
	})
	f := newFixture(t, router, true)

	// Prime the cache so a (wrong) fallback would have data to return
	require.Nil(t, f.queries.Customers(context.Background()).Err)

	results := f.queries.SearchCustomers(context.Background(), "smith")
	require.Nil(t, results.Err)
	assert.Empty(t, results.Data,
		"An empty-but-valid server result is NOT a failure and must not trigger the fallback")
}

func TestReminderStatsScenario(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/reminders/analytics", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.ReminderAnalytics{
			Counts:         client.ReminderCounts{Total: 10, Active: 6, Overdue: 2, Completed: 4},
			CompletionRate: 0.4,
		})
	})
	f := newFixture(t, router, true)

	snapshot := f.queries.ReminderAnalytics(context.Background())
	require.Nil(t, snapshot.Err)

	stats := views.StatsFromAnalytics(snapshot.Data)
	assert.Equal(t, 10, stats.Total)
	assert.InDelta(t, 40.0, stats.CompletionRate, 0.0001, "The 0-1 fraction should be reported as a percentage")
}

func TestResumeInvalidatesAndRefetches(t *testing.T) {
	f := newFixture(t, customersRouter(), true)

	require.Nil(t, f.queries.Customers(context.Background()).Err)
	f.store.Set("customer:c-1:notes", []client.Note{{ID: "n-1"}})

	f.queries.Resume(context.Background())

	_, _, ok := f.store.Get("customer:c-1:notes")
	assert.False(t, ok, "Reconnecting should drop every cached entry")

	_, _, ok = f.store.Get(keyCustomers)
	assert.True(t, ok, "The customer list should be warmed back up")
	assert.EqualValues(t, 2, atomic.LoadInt64(f.requests))
}
