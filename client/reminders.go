package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Reminder status filters accepted by the global reminder list.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusOverdue   = "overdue"
	StatusCompleted = "completed"
)

type ReminderParams struct {
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Priority    string    `json:"priority" validate:"required,oneof=low medium high"`
}

func (c *Client) ListReminders(ctx context.Context, customerID string) ([]Reminder, error) {
	reminders := []Reminder{}
	if err := c.get(ctx, fmt.Sprintf("/customers/%s/reminders", customerID), nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (c *Client) CreateReminder(ctx context.Context, customerID string, params ReminderParams) (*Reminder, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	reminder := Reminder{}
	if err := c.post(ctx, fmt.Sprintf("/customers/%s/reminders", customerID), params, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// UpdateReminder sends a partial patch. Fields absent from 'patch' are
// left untouched by the backend; an explicit nil value for
// "dateCompleted" reopens a completed reminder.
func (c *Client) UpdateReminder(ctx context.Context, customerID, reminderID string, patch map[string]interface{}) (*Reminder, error) {
	reminder := Reminder{}
	path := fmt.Sprintf("/customers/%s/reminders/%s", customerID, reminderID)

	if err := c.patch(ctx, path, patch, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (c *Client) DeleteReminder(ctx context.Context, customerID, reminderID string) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%s/reminders/%s", customerID, reminderID))
}

// ListAllReminders fetches reminders across every customer. 'status'
// narrows the list server-side & 'includeCustomer' asks for the
// customer join on each row.
func (c *Client) ListAllReminders(ctx context.Context, status string, includeCustomer bool) ([]Reminder, error) {
	params := url.Values{}
	if status != "" && status != StatusAll {
		params.Set("status", status)
	}
	if includeCustomer {
		params.Set("include", "customer")
	}

	reminders := []Reminder{}
	if err := c.get(ctx, "/reminders", params, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (c *Client) ReminderAnalytics(ctx context.Context) (*ReminderAnalytics, error) {
	analytics := ReminderAnalytics{}
	if err := c.get(ctx, "/reminders/analytics", nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}
