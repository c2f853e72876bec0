package views

import (
	"sort"
	"time"

	"github.com/clientelehq/clientele/client"
)

var priorityRank = map[string]int{
	client.PriorityHigh:   3,
	client.PriorityMedium: 2,
	client.PriorityLow:    1,
}

// SortReminders orders reminders for display: open ones before
// completed, higher priority first within the same completion state,
// earliest due date first within the same priority. The input is not
// modified; sorting an already-sorted list returns the same order.
func SortReminders(reminders []client.Reminder) []client.Reminder {
	sorted := make([]client.Reminder, len(reminders))
	copy(sorted, reminders)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.Completed() != b.Completed() {
			return !a.Completed()
		}
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] > priorityRank[b.Priority]
		}
		return a.DueDate.Before(b.DueDate)
	})

	return sorted
}

// ActiveReminders returns reminders with no completion stamp.
func ActiveReminders(reminders []client.Reminder) []client.Reminder {
	return filterReminders(reminders, func(r client.Reminder) bool {
		return !r.Completed()
	})
}

// OverdueReminders returns open reminders whose due date has passed.
func OverdueReminders(reminders []client.Reminder, now time.Time) []client.Reminder {
	return filterReminders(reminders, func(r client.Reminder) bool {
		return r.Overdue(now)
	})
}

// UpcomingReminders returns open reminders that are not yet overdue.
func UpcomingReminders(reminders []client.Reminder, now time.Time) []client.Reminder {
	return filterReminders(reminders, func(r client.Reminder) bool {
		return !r.Completed() && !r.Overdue(now)
	})
}

func CompletedReminders(reminders []client.Reminder) []client.Reminder {
	return filterReminders(reminders, func(r client.Reminder) bool {
		return r.Completed()
	})
}

func filterReminders(reminders []client.Reminder, keep func(client.Reminder) bool) []client.Reminder {
	filtered := []client.Reminder{}
	for _, reminder := range reminders {
		if keep(reminder) {
			filtered = append(filtered, reminder)
		}
	}
	return filtered
}

// ReminderStats is the display form of the backend's reminder
// analytics - CompletionRate is a 0-100 percentage here, not the 0-1
// fraction the API returns.
type ReminderStats struct {
	Total          int
	Active         int
	Overdue        int
	Completed      int
	CompletionRate float64
}

func StatsFromAnalytics(analytics *client.ReminderAnalytics) ReminderStats {
	if analytics == nil {
		return ReminderStats{}
	}

	return ReminderStats{
		Total:          analytics.Counts.Total,
		Active:         analytics.Counts.Active,
		Overdue:        analytics.Counts.Overdue,
		Completed:      analytics.Counts.Completed,
		CompletionRate: analytics.CompletionRate * 100,
	}
}
