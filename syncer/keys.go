package syncer

import "fmt"

// Cache keys are a composite of resource type + scope. Keeping the
// builders in one place so invalidation prefixes stay in sync with
// the read paths.
const (
	keyCustomers         = "customers"
	keySearchPrefix      = "customers:search:"
	keyCustomerPrefix    = "customer:"
	keyRemindersPrefix   = "reminders:"
	keyReminderAnalytics = "reminders:analytics"
)

func searchKey(query string) string {
	return keySearchPrefix + query
}

func customerScopedKey(customerID, resource string) string {
	return fmt.Sprintf("%s%s:%s", keyCustomerPrefix, customerID, resource)
}

func phonesKey(customerID string) string {
	return customerScopedKey(customerID, "phones")
}

func addressesKey(customerID string) string {
	return customerScopedKey(customerID, "addresses")
}

func notesKey(customerID string) string {
	return customerScopedKey(customerID, "notes")
}

func remindersKey(customerID string) string {
	return customerScopedKey(customerID, "reminders")
}

func allRemindersKey(status string, includeCustomer bool) string {
	return fmt.Sprintf("%slist:%s:%t", keyRemindersPrefix, status, includeCustomer)
}
