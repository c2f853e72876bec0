package client

import (
	"context"
	"fmt"
	"net/url"
)

type CreateCustomerParams struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers := []Customer{}
	if err := c.get(ctx, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// SearchCustomers runs a server-side substring match across customer
// names, emails & phone numbers.
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	customers := []Customer{}
	params := url.Values{"query": []string{query}}

	if err := c.get(ctx, "/customers/search", params, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	customer := Customer{}
	if err := c.post(ctx, "/customers", params, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes the customer; the backend cascades the
// delete to phones, addresses, notes & reminders.
func (c *Client) DeleteCustomer(ctx context.Context, customerID string) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%s", customerID))
}
