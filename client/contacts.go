package client

import (
	"context"
	"fmt"
)

type PhoneParams struct {
	Number      string `json:"number" validate:"required,e164"`
	Designation string `json:"designation" validate:"required,oneof=mobile home work other"`
}

type AddressParams struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=home work billing shipping other"`
}

func (c *Client) ListPhones(ctx context.Context, customerID string) ([]Phone, error) {
	phones := []Phone{}
	if err := c.get(ctx, fmt.Sprintf("/customers/%s/phones", customerID), nil, &phones); err != nil {
		return nil, err
	}
	return phones, nil
}

func (c *Client) CreatePhone(ctx context.Context, customerID string, params PhoneParams) (*Phone, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	phone := Phone{}
	if err := c.post(ctx, fmt.Sprintf("/customers/%s/phones", customerID), params, &phone); err != nil {
		return nil, err
	}
	return &phone, nil
}

func (c *Client) UpdatePhone(ctx context.Context, customerID, phoneID string, params PhoneParams) (*Phone, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	phone := Phone{}
	if err := c.put(ctx, fmt.Sprintf("/customers/%s/phones/%s", customerID, phoneID), params, &phone); err != nil {
		return nil, err
	}
	return &phone, nil
}

func (c *Client) DeletePhone(ctx context.Context, customerID, phoneID string) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%s/phones/%s", customerID, phoneID))
}

func (c *Client) ListAddresses(ctx context.Context, customerID string) ([]Address, error) {
	addresses := []Address{}
	if err := c.get(ctx, fmt.Sprintf("/customers/%s/addresses", customerID), nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) CreateAddress(ctx context.Context, customerID string, params AddressParams) (*Address, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	address := Address{}
	if err := c.post(ctx, fmt.Sprintf("/customers/%s/addresses", customerID), params, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *Client) UpdateAddress(ctx context.Context, customerID, addressID string, params AddressParams) (*Address, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	address := Address{}
	if err := c.put(ctx, fmt.Sprintf("/customers/%s/addresses/%s", customerID, addressID), params, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *Client) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%s/addresses/%s", customerID, addressID))
}
