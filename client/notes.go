package client

import (
	"context"
	"fmt"
)

// NoteParams caps content at 1000 characters. The backend does not
// enforce the cap, so it has to hold here.
type NoteParams struct {
	Content string `json:"content" validate:"required,max=1000"`
}

func (c *Client) ListNotes(ctx context.Context, customerID string) ([]Note, error) {
	notes := []Note{}
	if err := c.get(ctx, fmt.Sprintf("/customers/%s/notes", customerID), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, customerID string, params NoteParams) (*Note, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	note := Note{}
	if err := c.post(ctx, fmt.Sprintf("/customers/%s/notes", customerID), params, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, customerID, noteID string, params NoteParams) (*Note, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	note := Note{}
	if err := c.put(ctx, fmt.Sprintf("/customers/%s/notes/%s", customerID, noteID), params, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, customerID, noteID string) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%s/notes/%s", customerID, noteID))
}
