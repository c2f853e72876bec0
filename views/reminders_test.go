package views

import (
	"testing"
	"time"

	"github.com/clientelehq/clientele/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminderIDs(reminders []client.Reminder) []string {
	ids := make([]string, len(reminders))
	for i, reminder := range reminders {
		ids[i] = reminder.ID
	}
	return ids
}

func TestSortReminders(t *testing.T) {
	now := time.Now()
	doneAt := now.Add(-time.Hour)

	reminders := []client.Reminder{
		{ID: "done-high", Priority: client.PriorityHigh, DueDate: now.Add(time.Hour), DateCompleted: &doneAt},
		{ID: "low-early", Priority: client.PriorityLow, DueDate: now.Add(time.Hour)},
		{ID: "high-late", Priority: client.PriorityHigh, DueDate: now.Add(48 * time.Hour)},
		{ID: "high-early", Priority: client.PriorityHigh, DueDate: now.Add(time.Hour)},
		{ID: "medium", Priority: client.PriorityMedium, DueDate: now.Add(time.Hour)},
	}

	sorted := SortReminders(reminders)

	assert.Equal(t,
		[]string{"high-early", "high-late", "medium", "low-early", "done-high"},
		reminderIDs(sorted),
		"Open before completed, then priority, then earliest due date")

	assert.Equal(t, "done-high", reminderIDs(reminders)[0],
		"The input slice should be left untouched")
}

func TestSortRemindersIsIdempotent(t *testing.T) {
	now := time.Now()
	doneAt := now

	reminders := []client.Reminder{
		{ID: "a", Priority: client.PriorityMedium, DueDate: now.Add(time.Hour)},
		{ID: "b", Priority: client.PriorityMedium, DueDate: now.Add(time.Hour)},
		{ID: "c", Priority: client.PriorityHigh, DueDate: now},
		{ID: "d", Priority: client.PriorityLow, DueDate: now, DateCompleted: &doneAt},
	}

	once := SortReminders(reminders)
	twice := SortReminders(once)

	assert.Equal(t, reminderIDs(once), reminderIDs(twice),
		"Sorting an already-sorted list should not reorder equal elements")
}

func TestReminderDerivedFlags(t *testing.T) {
	now := time.Now()
	doneAt := now.Add(-time.Minute)

	open := client.Reminder{DueDate: now.Add(time.Hour)}
	late := client.Reminder{DueDate: now.Add(-time.Hour)}
	done := client.Reminder{DueDate: now.Add(-time.Hour), DateCompleted: &doneAt}

	assert.False(t, open.Completed())
	assert.False(t, open.Overdue(now))

	assert.False(t, late.Completed())
	assert.True(t, late.Overdue(now))

	assert.True(t, done.Completed())
	assert.False(t, done.Overdue(now), "A completed reminder is never overdue, regardless of due date")
}

func TestReminderBuckets(t *testing.T) {
	now := time.Now()
	doneAt := now

	upcoming := client.Reminder{ID: "upcoming", DueDate: now.Add(time.Hour)}
	overdue := client.Reminder{ID: "overdue", DueDate: now.Add(-time.Hour)}
	completed := client.Reminder{ID: "completed", DueDate: now.Add(-time.Hour), DateCompleted: &doneAt}

	reminders := []client.Reminder{upcoming, overdue, completed}

	assert.Equal(t, []string{"upcoming", "overdue"}, reminderIDs(ActiveReminders(reminders)))
	assert.Equal(t, []string{"overdue"}, reminderIDs(OverdueReminders(reminders, now)))
	assert.Equal(t, []string{"upcoming"}, reminderIDs(UpcomingReminders(reminders, now)))
	assert.Equal(t, []string{"completed"}, reminderIDs(CompletedReminders(reminders)))
}

func TestReopenedReminderRejoinsBuckets(t *testing.T) {
	now := time.Now()
	doneAt := now

	reminder := client.Reminder{ID: "r-1", DueDate: now.Add(time.Hour), DateCompleted: &doneAt}
	require.Len(t, CompletedReminders([]client.Reminder{reminder}), 1)

	// Reopen: the PATCH with an explicit null clears the stamp
	reminder.DateCompleted = nil

	reminders := []client.Reminder{reminder}
	assert.Len(t, ActiveReminders(reminders), 1)
	assert.Len(t, UpcomingReminders(reminders, now), 1, "Future due date puts it in upcoming")
	assert.Empty(t, CompletedReminders(reminders))
	assert.Empty(t, OverdueReminders(reminders, now))

	// Same reminder with a past due date lands in overdue instead
	reminder.DueDate = now.Add(-time.Hour)
	reminders = []client.Reminder{reminder}
	assert.Len(t, OverdueReminders(reminders, now), 1)
	assert.Empty(t, UpcomingReminders(reminders, now))
}

func TestStatsFromAnalytics(t *testing.T) {
	stats := StatsFromAnalytics(&client.ReminderAnalytics{
		Counts:         client.ReminderCounts{Total: 10, Active: 6, Overdue: 2, Completed: 4},
		CompletionRate: 0.4,
	})

	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 6, stats.Active)
	assert.Equal(t, 2, stats.Overdue)
	assert.Equal(t, 4, stats.Completed)
	assert.InDelta(t, 40.0, stats.CompletionRate, 0.0001)

	assert.Zero(t, StatsFromAnalytics(nil), "Missing analytics should render as zeros, not panic")
}

func TestFormatDue(t *testing.T) {
	now := time.Now()
	doneAt := now

	assert.Equal(t, "due in 3d", FormatDue(client.Reminder{DueDate: now.Add(72 * time.Hour)}, now))
	assert.Equal(t, "due in 5h", FormatDue(client.Reminder{DueDate: now.Add(5 * time.Hour)}, now))
	assert.Equal(t, "2d overdue", FormatDue(client.Reminder{DueDate: now.Add(-48 * time.Hour)}, now))
	assert.Equal(t, "done", FormatDue(client.Reminder{DueDate: now.Add(-time.Hour), DateCompleted: &doneAt}, now))
}
