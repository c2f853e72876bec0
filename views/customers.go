package views

import (
	"sort"
	"strings"

	"github.com/clientelehq/clientele/client"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Customer list sort fields.
const (
	SortByName   = "name"
	SortByEmail  = "email"
	SortByJoined = "joined"
)

// SortCustomers orders the list by full name, email or join date.
// Text fields compare with locale-aware collation, dates compare
// chronologically. The input is not modified.
func SortCustomers(customers []client.Customer, field string, descending bool, locale language.Tag) []client.Customer {
	sorted := make([]client.Customer, len(customers))
	copy(sorted, customers)

	collator := collate.New(locale, collate.IgnoreCase)

	less := func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch field {
		case SortByEmail:
			return collator.CompareString(a.Email, b.Email) < 0
		case SortByJoined:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return collator.CompareString(a.FullName(), b.FullName()) < 0
		}
	}

	if descending {
		sort.SliceStable(sorted, func(i, j int) bool { return less(j, i) })
		return sorted
	}

	sort.SliceStable(sorted, less)
	return sorted
}

// FilterCustomers is a case-insensitive substring match over first
// name, last name, email & every phone number. It backs the search
// fallback when the server-side search is unreachable.
func FilterCustomers(customers []client.Customer, query string) []client.Customer {
	query = strings.ToLower(query)
	matched := []client.Customer{}

	for _, customer := range customers {
		if customerMatches(customer, query) {
			matched = append(matched, customer)
		}
	}
	return matched
}

func customerMatches(customer client.Customer, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(customer.FirstName), loweredQuery) ||
		strings.Contains(strings.ToLower(customer.LastName), loweredQuery) ||
		strings.Contains(strings.ToLower(customer.Email), loweredQuery) {
		return true
	}

	for _, phone := range customer.Phones {
		if strings.Contains(strings.ToLower(phone.Number), loweredQuery) {
			return true
		}
	}
	return false
}
