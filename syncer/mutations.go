package syncer

import (
	"context"
	"time"

	"github.com/clientelehq/clientele/client"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned before any network or cache work
// when a mutation is attempted without a session. This is a caller
// bug, not a runtime failure, which is why it is a bare sentinel
// instead of being folded into the usual error reporting.
var ErrNotAuthenticated = errors.New("not authenticated: sign in before modifying data")

// Mutations is the write side of the data synchronization layer.
// Every helper keeps the cache consistent before it returns: either
// by patching the affected entry in place or by invalidating &
// refreshing it.
type Mutations struct {
	api      *client.Client
	store    *Store
	session  SessionChecker
	pending  *Pending
	notifier Notifier
	logg     *zap.SugaredLogger
}

func NewMutations(api *client.Client, store *Store, session SessionChecker, pending *Pending, notifier Notifier, logg *zap.SugaredLogger) *Mutations {
	if notifier == nil {
		notifier = logNotifier{logg: logg}
	}

	return &Mutations{
		api:      api,
		store:    store,
		session:  session,
		pending:  pending,
		notifier: notifier,
		logg:     logg,
	}
}

// report surfaces a failed mutation through the notifier with the
// most specific message available & passes the error back unchanged.
func (m *Mutations) report(err error) error {
	apiErr := &client.APIError{}
	if errors.As(err, &apiErr) {
		m.notifier.Notify(apiErr.Message)
	} else {
		m.notifier.Notify(err.Error())
	}
	return err
}

// ---------------------------------------------------------------------------------//
// Customers
// --------------------------------------------------------------------------------//

// CreateCustomer creates the customer & appends it to the cached
// customer list in place, so list views update without a refetch.
func (m *Mutations) CreateCustomer(ctx context.Context, params client.CreateCustomerParams) (*client.Customer, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	customer, err := m.api.CreateCustomer(ctx, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.store.Update(keyCustomers, func(cached interface{}) interface{} {
		customers, ok := cached.([]client.Customer)
		if !ok {
			return cached
		}
		return append(customers, *customer)
	})
	m.store.InvalidatePrefix(keySearchPrefix)

	return customer, nil
}

// DeleteCustomer optimistically drops the customer from the cached
// list before the request resolves & rolls the list back if the
// server rejects the delete. Children are cascaded server-side.
func (m *Mutations) DeleteCustomer(ctx context.Context, customerID string) error {
	if !m.session.SignedIn() {
		return ErrNotAuthenticated
	}

	m.pending.start(customerID, ActionDelete)
	defer m.pending.finish(customerID, ActionDelete)

	snapshot, _, hadEntry := m.store.Get(keyCustomers)

	m.store.Update(keyCustomers, func(cached interface{}) interface{} {
		customers, ok := cached.([]client.Customer)
		if !ok {
			return cached
		}

		remaining := make([]client.Customer, 0, len(customers))
		for _, customer := range customers {
			if customer.ID != customerID {
				remaining = append(remaining, customer)
			}
		}
		return remaining
	})

	if err := m.api.DeleteCustomer(ctx, customerID); err != nil {
		if hadEntry {
			m.store.Update(keyCustomers, func(interface{}) interface{} { return snapshot })
		}
		return m.report(err)
	}

	m.store.InvalidatePrefix(keySearchPrefix)
	m.store.InvalidatePrefix(keyCustomerPrefix + customerID + ":")
	m.store.InvalidatePrefix(keyRemindersPrefix)

	return nil
}

// ---------------------------------------------------------------------------------//
// Phones
// --------------------------------------------------------------------------------//

func (m *Mutations) CreatePhone(ctx context.Context, customerID string, params client.PhoneParams) (*client.Phone, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	phone, err := m.api.CreatePhone(ctx, customerID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.refreshPhones(ctx, customerID)
	return phone, nil
}

func (m *Mutations) UpdatePhone(ctx context.Context, customerID, phoneID string, params client.PhoneParams) (*client.Phone, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	m.pending.start(phoneID, ActionUpdate)
	defer m.pending.finish(phoneID, ActionUpdate)

	phone, err := m.api.UpdatePhone(ctx, customerID, phoneID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.refreshPhones(ctx, customerID)
	return phone, nil
}

func (m *Mutations) DeletePhone(ctx context.Context, customerID, phoneID string) error {
	if !m.session.SignedIn() {
		return ErrNotAuthenticated
	}

	m.pending.start(phoneID, ActionDelete)
	defer m.pending.finish(phoneID, ActionDelete)

	if err := m.api.DeletePhone(ctx, customerID, phoneID); err != nil {
		return m.report(err)
	}

	m.refreshPhones(ctx, customerID)
	return nil
}

func (m *Mutations) refreshPhones(ctx context.Context, customerID string) {
	// Phone numbers are part of the search fallback data, so the
	// customer list goes stale too.
	m.store.Invalidate(keyCustomers)
	m.refreshCollection(ctx, phonesKey(customerID), func(ctx context.Context) (interface{}, error) {
		return m.api.ListPhones(ctx, customerID)
	})
}

// ---------------------------------------------------------------------------------//
// Addresses
// --------------------------------------------------------------------------------//

func (m *Mutations) CreateAddress(ctx context.Context, customerID string, params client.AddressParams) (*client.Address, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	address, err := m.api.CreateAddress(ctx, customerID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.refreshAddresses(ctx, customerID)
	return address, nil
}

func (m *Mutations) UpdateAddress(ctx context.Context, customerID, addressID string, params client.AddressParams) (*client.Address, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	m.pending.start(addressID, ActionUpdate)
	defer m.pending.finish(addressID, ActionUpdate)

	address, err := m.api.UpdateAddress(ctx, customerID, addressID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.refreshAddresses(ctx, customerID)
	return address, nil
}

func (m *Mutations) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	if !m.session.SignedIn() {
		return ErrNotAuthenticated
	}

	m.pending.start(addressID, ActionDelete)
	defer m.pending.finish(addressID, ActionDelete)

	if err := m.api.DeleteAddress(ctx, customerID, addressID); err != nil {
		return m.report(err)
	}

	m.refreshAddresses(ctx, customerID)
	return nil
}

func (m *Mutations) refreshAddresses(ctx context.Context, customerID string) {
	m.refreshCollection(ctx, addressesKey(customerID), func(ctx context.Context) (interface{}, error) {
		return m.api.ListAddresses(ctx, customerID)
	})
}

// ---------------------------------------------------------------------------------//
// Notes
// --------------------------------------------------------------------------------//

func (m *Mutations) CreateNote(ctx context.Context, customerID string, params client.NoteParams) (*client.Note, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	note, err := m.api.CreateNote(ctx, customerID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.refreshNotes(ctx, customerID)
	return note, nil
}

func (m *Mutations) UpdateNote(ctx context.Context, customerID, noteID string, params client.NoteParams) (*client.Note, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	m.pending.start(noteID, ActionUpdate)
	defer m.pending.finish(noteID, ActionUpdate)

	note, err := m.api.UpdateNote(ctx, customerID, noteID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.refreshNotes(ctx, customerID)
	return note, nil
}

func (m *Mutations) DeleteNote(ctx context.Context, customerID, noteID string) error {
	if !m.session.SignedIn() {
		return ErrNotAuthenticated
	}

	m.pending.start(noteID, ActionDelete)
	defer m.pending.finish(noteID, ActionDelete)

	if err := m.api.DeleteNote(ctx, customerID, noteID); err != nil {
		return m.report(err)
	}

	m.refreshNotes(ctx, customerID)
	return nil
}

func (m *Mutations) refreshNotes(ctx context.Context, customerID string) {
	m.refreshCollection(ctx, notesKey(customerID), func(ctx context.Context) (interface{}, error) {
		return m.api.ListNotes(ctx, customerID)
	})
}

// ---------------------------------------------------------------------------------//
// Reminders
// --------------------------------------------------------------------------------//

func (m *Mutations) CreateReminder(ctx context.Context, customerID string, params client.ReminderParams) (*client.Reminder, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	reminder, err := m.api.CreateReminder(ctx, customerID, params)
	if err != nil {
		return nil, m.report(err)
	}

	m.invalidateReminders(ctx, customerID)
	return reminder, nil
}

// CompleteReminder stamps the reminder with the current time.
// Reminders are owned by a customer even when acted on from the
// global list, so this goes through the customer-scoped endpoint.
func (m *Mutations) CompleteReminder(ctx context.Context, customerID, reminderID string) (*client.Reminder, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	m.pending.start(reminderID, ActionComplete)
	defer m.pending.finish(reminderID, ActionComplete)

	patch := map[string]interface{}{"dateCompleted": time.Now().UTC().Format(time.RFC3339)}
	reminder, err := m.api.UpdateReminder(ctx, customerID, reminderID, patch)
	if err != nil {
		return nil, m.report(err)
	}

	m.invalidateReminders(ctx, customerID)
	return reminder, nil
}

// ReopenReminder clears the completion stamp. The explicit null in
// the patch body is what flips the reminder back to active.
func (m *Mutations) ReopenReminder(ctx context.Context, customerID, reminderID string) (*client.Reminder, error) {
	if !m.session.SignedIn() {
		return nil, ErrNotAuthenticated
	}

	m.pending.start(reminderID, ActionReopen)
	defer m.pending.finish(reminderID, ActionReopen)

	patch := map[string]interface{}{"dateCompleted": nil}
	reminder, err := m.api.UpdateReminder(ctx, customerID, reminderID, patch)
	if err != nil {
		return nil, m.report(err)
	}

	m.invalidateReminders(ctx, customerID)
	return reminder, nil
}

func (m *Mutations) DeleteReminder(ctx context.Context, customerID, reminderID string) error {
	if !m.session.SignedIn() {
		return ErrNotAuthenticated
	}

	m.pending.start(reminderID, ActionDelete)
	defer m.pending.finish(reminderID, ActionDelete)

	if err := m.api.DeleteReminder(ctx, customerID, reminderID); err != nil {
		return m.report(err)
	}

	m.invalidateReminders(ctx, customerID)
	return nil
}

// invalidateReminders keeps every reminder view consistent after a
// mutation: the owning customer's reminders are refreshed & all
// global list/analytics entries dropped, since a single change can
// move a reminder between any of the status buckets.
func (m *Mutations) invalidateReminders(ctx context.Context, customerID string) {
	m.store.InvalidatePrefix(keyRemindersPrefix)
	m.refreshCollection(ctx, remindersKey(customerID), func(ctx context.Context) (interface{}, error) {
		return m.api.ListReminders(ctx, customerID)
	})
}

// refreshCollection revalidates a cached collection before the
// mutation returns. A refetch failure is not a mutation failure -
// the entry is dropped instead so the next read fetches clean.
func (m *Mutations) refreshCollection(ctx context.Context, key string, fn FetchFunc) {
	m.store.Invalidate(key)

	if _, err := m.store.Revalidate(ctx, key, fn); err != nil {
		m.logg.Warnf("refresh of %q after mutation failed: %v", key, err)
		m.store.Invalidate(key)
	}
}
