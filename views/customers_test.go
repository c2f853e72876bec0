package views

import (
	"testing"
	"time"

	"github.com/clientelehq/clientele/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func customerIDs(customers []client.Customer) []string {
	ids := make([]string, len(customers))
	for i, customer := range customers {
		ids[i] = customer.ID
	}
	return ids
}

func testCustomerList() []client.Customer {
	return []client.Customer{
		{ID: "c-1", FirstName: "Frank", LastName: "Abagnale", Email: "frank@example.com",
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c-2", FirstName: "Élodie", LastName: "Arnaud", Email: "elodie@example.com",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Phones:    []client.Phone{{Number: "+33612345678", Designation: client.PhoneMobile}}},
		{ID: "c-3", FirstName: "ann", LastName: "Smith", Email: "Ann@example.com",
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestSortCustomersByName(t *testing.T) {
	customers := testCustomerList()

	sorted := SortCustomers(customers, SortByName, false, language.English)
	assert.Equal(t, []string{"c-3", "c-2", "c-1"}, customerIDs(sorted),
		"Collation should fold case and put Élodie before Frank, not after Z")

	descending := SortCustomers(customers, SortByName, true, language.English)
	assert.Equal(t, []string{"c-1", "c-2", "c-3"}, customerIDs(descending))

	assert.Equal(t, "c-1", customers[0].ID, "The input slice should be left untouched")
}

func TestSortCustomersByEmailAndJoinDate(t *testing.T) {
	customers := testCustomerList()

	byEmail := SortCustomers(customers, SortByEmail, false, language.English)
	assert.Equal(t, []string{"c-3", "c-2", "c-1"}, customerIDs(byEmail))

	byJoined := SortCustomers(customers, SortByJoined, false, language.English)
	assert.Equal(t, []string{"c-2", "c-3", "c-1"}, customerIDs(byJoined), "Join date compares chronologically")

	byJoinedDesc := SortCustomers(customers, SortByJoined, true, language.English)
	assert.Equal(t, []string{"c-1", "c-3", "c-2"}, customerIDs(byJoinedDesc))
}

func TestFilterCustomers(t *testing.T) {
	customers := testCustomerList()

	assert.Equal(t, []string{"c-3"}, customerIDs(FilterCustomers(customers, "SMITH")),
		"Matching is case-insensitive")
	assert.Equal(t, []string{"c-2"}, customerIDs(FilterCustomers(customers, "61234")),
		"Phone numbers participate in the match")
	assert.Equal(t, []string{"c-1", "c-2", "c-3"}, customerIDs(FilterCustomers(customers, "example.com")))
	assert.Empty(t, FilterCustomers(customers, "zoidberg"))
}

func TestFormatAddress(t *testing.T) {
	full := client.Address{
		Line1: "12 Rue de la Paix", Line2: "Apt 4", City: "Paris",
		State: "Île-de-France", PostalCode: "75002", Country: "France", Type: client.AddressHome,
	}
	assert.Equal(t, "12 Rue de la Paix\nApt 4\nParis, Île-de-France 75002\nFrance", FormatAddress(full))

	minimal := client.Address{Line1: "1 Main St", City: "Springfield", Country: "USA", Type: client.AddressWork}
	assert.Equal(t, "1 Main St\nSpringfield\nUSA", FormatAddress(minimal),
		"Optional fields should be elided, not rendered empty")
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Frank Abagnale", client.Customer{FirstName: "Frank", LastName: "Abagnale"}.FullName())
	assert.Equal(t, "Cher", client.Customer{FirstName: "Cher"}.FullName())
	assert.Equal(t, "Madonna", client.Customer{LastName: "Madonna"}.FullName())
}
