package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/clientelehq/clientele/client"
)

// FormatAddress lays out an address over multiple lines, skipping
// empty optional fields.
func FormatAddress(address client.Address) string {
	lines := []string{address.Line1}
	if address.Line2 != "" {
		lines = append(lines, address.Line2)
	}

	cityLine := address.City
	if address.State != "" {
		cityLine += ", " + address.State
	}
	if address.PostalCode != "" {
		cityLine += " " + address.PostalCode
	}

	lines = append(lines, cityLine, address.Country)
	return strings.Join(lines, "\n")
}

// FormatDue renders a reminder's due date relative to now, e.g.
// "due in 3d", "2h overdue" or "done" once completed.
func FormatDue(reminder client.Reminder, now time.Time) string {
	if reminder.Completed() {
		return "done"
	}

	remaining := reminder.DueDate.Sub(now)
	if remaining < 0 {
		return fmt.Sprintf("%s overdue", formatDuration(-remaining))
	}
	return fmt.Sprintf("due in %s", formatDuration(remaining))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= 48*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		minutes := int(d.Minutes())
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("%dm", minutes)
	}
}
