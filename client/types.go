package client

import "time"

// Phone designations supported by the backend.
const (
	PhoneMobile = "mobile"
	PhoneHome   = "home"
	PhoneWork   = "work"
	PhoneOther  = "other"
)

// Address types supported by the backend.
const (
	AddressHome     = "home"
	AddressWork     = "work"
	AddressBilling  = "billing"
	AddressShipping = "shipping"
	AddressOther    = "other"
)

// Reminder priorities supported by the backend.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Customer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phones    []Phone   `json:"phones,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Phone struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Designation string `json:"designation"`
}

type Address struct {
	ID         string `json:"id"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
	Type       string `json:"type"`
}

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerRef is the customer join attached to reminders fetched
// through the global reminder list.
type CustomerRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Reminder struct {
	ID            string       `json:"id"`
	CustomerID    string       `json:"customerId"`
	Description   string       `json:"description"`
	DueDate       time.Time    `json:"dueDate"`
	Priority      string       `json:"priority"`
	DateCompleted *time.Time   `json:"dateCompleted"`
	Customer      *CustomerRef `json:"customer,omitempty"`
}

// Completed is derived from DateCompleted & never stored on its own
func (r Reminder) Completed() bool {
	return r.DateCompleted != nil
}

// Overdue holds only for reminders that are still open
func (r Reminder) Overdue(now time.Time) bool {
	return !r.Completed() && r.DueDate.Before(now)
}

type ReminderCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

// ReminderAnalytics is the aggregate the backend computes across all
// of a user's reminders. CompletionRate is a 0-1 fraction.
type ReminderAnalytics struct {
	Counts         ReminderCounts `json:"counts"`
	CompletionRate float64        `json:"completionRate"`
}

type Identity struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// SignupResult carries the custom sign-in token the identity provider
// exchanges for a session after a fresh signup.
type SignupResult struct {
	UserID      string `json:"userId"`
	CustomToken string `json:"customToken"`
}
