package syncer

import (
	"context"
	"strings"

	"github.com/clientelehq/clientele/client"
	"github.com/clientelehq/clientele/views"
	"go.uber.org/zap"
)

// SessionChecker is the slice of session.Session the sync layer needs.
type SessionChecker interface {
	SignedIn() bool
}

// Snapshot is what every read returns: the cached (possibly stale)
// data, or the zero value with Skipped set when the read was
// suppressed by its enabled guard.
type Snapshot[T any] struct {
	Data    T
	Stale   bool
	Skipped bool
	Err     error
}

// Queries is the read side of the data synchronization layer. All
// reads serve cached data when available & revalidate in the
// background (see Store.Fetch).
type Queries struct {
	api     *client.Client
	store   *Store
	session SessionChecker
	logg    *zap.SugaredLogger
}

func NewQueries(api *client.Client, store *Store, session SessionChecker, logg *zap.SugaredLogger) *Queries {
	return &Queries{api: api, store: store, session: session, logg: logg}
}

// fetchAs runs the store's stale-while-revalidate path & keeps the
// concrete type on the way out.
func fetchAs[T any](ctx context.Context, q *Queries, enabled bool, key string, fn func(ctx context.Context) (T, error)) Snapshot[T] {
	if !enabled || !q.session.SignedIn() {
		return Snapshot[T]{Skipped: true}
	}

	data, stale, err := q.store.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return Snapshot[T]{Err: err}
	}

	typed, ok := data.(T)
	if !ok {
		// A mutation replaced the entry with an incompatible shape;
		// treat it as a miss & refetch.
		q.store.Invalidate(key)
		refetched, err := q.store.Revalidate(ctx, key, func(ctx context.Context) (interface{}, error) {
			return fn(ctx)
		})
		if err != nil {
			return Snapshot[T]{Err: err}
		}
		typed, _ = refetched.(T)
		return Snapshot[T]{Data: typed}
	}

	return Snapshot[T]{Data: typed, Stale: stale}
}

func refreshAs[T any](ctx context.Context, q *Queries, key string, fn func(ctx context.Context) (T, error)) Snapshot[T] {
	data, err := q.store.Revalidate(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return Snapshot[T]{Err: err}
	}

	typed, _ := data.(T)
	return Snapshot[T]{Data: typed}
}

func (q *Queries) Customers(ctx context.Context) Snapshot[[]client.Customer] {
	return fetchAs(ctx, q, true, keyCustomers, q.api.ListCustomers)
}

// RefreshCustomers forces a revalidation of the customer list - the
// poller and the reconnect hook both land here.
func (q *Queries) RefreshCustomers(ctx context.Context) Snapshot[[]client.Customer] {
	return refreshAs(ctx, q, keyCustomers, q.api.ListCustomers)
}

// SearchCustomers prefers the server-side search. When the call
// itself fails (network/decode - an empty result is NOT a failure)
// it falls back to a case-insensitive substring match over the
// cached full customer list.
func (q *Queries) SearchCustomers(ctx context.Context, query string) Snapshot[[]client.Customer] {
	query = strings.TrimSpace(query)
	snapshot := fetchAs(ctx, q, query != "", searchKey(query), func(ctx context.Context) ([]client.Customer, error) {
		return q.api.SearchCustomers(ctx, query)
	})

	if snapshot.Err == nil {
		return snapshot
	}

	cached, _, ok := q.store.Get(keyCustomers)
	if !ok {
		return snapshot
	}

	customers, ok := cached.([]client.Customer)
	if !ok {
		return snapshot
	}

	q.logg.Warnf("server search failed, falling back to cached filter: %v", snapshot.Err)
	return Snapshot[[]client.Customer]{Data: views.FilterCustomers(customers, query), Stale: true}
}

func (q *Queries) Phones(ctx context.Context, customerID string) Snapshot[[]client.Phone] {
	return fetchAs(ctx, q, customerID != "", phonesKey(customerID), func(ctx context.Context) ([]client.Phone, error) {
		return q.api.ListPhones(ctx, customerID)
	})
}

func (q *Queries) Addresses(ctx context.Context, customerID string) Snapshot[[]client.Address] {
	return fetchAs(ctx, q, customerID != "", addressesKey(customerID), func(ctx context.Context) ([]client.Address, error) {
		return q.api.ListAddresses(ctx, customerID)
	})
}

func (q *Queries) Notes(ctx context.Context, customerID string) Snapshot[[]client.Note] {
	return fetchAs(ctx, q, customerID != "", notesKey(customerID), func(ctx context.Context) ([]client.Note, error) {
		return q.api.ListNotes(ctx, customerID)
	})
}

func (q *Queries) Reminders(ctx context.Context, customerID string) Snapshot[[]client.Reminder] {
	return fetchAs(ctx, q, customerID != "", remindersKey(customerID), func(ctx context.Context) ([]client.Reminder, error) {
		return q.api.ListReminders(ctx, customerID)
	})
}

func (q *Queries) AllReminders(ctx context.Context, status string, includeCustomer bool) Snapshot[[]client.Reminder] {
	if status == "" {
		status = client.StatusAll
	}
	return fetchAs(ctx, q, true, allRemindersKey(status, includeCustomer), func(ctx context.Context) ([]client.Reminder, error) {
		return q.api.ListAllReminders(ctx, status, includeCustomer)
	})
}

func (q *Queries) ReminderAnalytics(ctx context.Context) Snapshot[*client.ReminderAnalytics] {
	return fetchAs(ctx, q, true, keyReminderAnalytics, q.api.ReminderAnalytics)
}

// Resume is the network-reconnect hook: every cached entry may have
// gone stale while offline, so drop the lot & warm the customer list
// back up.
func (q *Queries) Resume(ctx context.Context) {
	q.store.InvalidateAll()

	if snapshot := q.RefreshCustomers(ctx); snapshot.Err != nil {
		q.logg.Warnf("refresh after reconnect failed: %v", snapshot.Err)
	}
}
