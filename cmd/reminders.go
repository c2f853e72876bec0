/*
Copyright © 2024 Clientele Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/clientelehq/clientele/client"
	"github.com/clientelehq/clientele/colors"
	"github.com/clientelehq/clientele/views"
	"github.com/spf13/cobra"
)

func createRemindersCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List reminders across all customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := queries.AllReminders(cmd.Context(), status, true)
			if snapshot.Err != nil {
				return snapshot.Err
			}
			if snapshot.Skipped {
				return fmt.Errorf("not signed in - run %s first", colors.Blue("clientele login"))
			}

			renderReminders(views.SortReminders(snapshot.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", client.StatusAll, "all, active, overdue or completed")

	cmd.AddCommand(createReminderAddCmd())
	cmd.AddCommand(createReminderActionCmd("complete", "Mark a reminder as done"))
	cmd.AddCommand(createReminderActionCmd("reopen", "Put a completed reminder back into the active list"))
	cmd.AddCommand(createReminderActionCmd("rm", "Delete a reminder"))
	cmd.AddCommand(createReminderStatsCmd())

	return cmd
}

func createReminderAddCmd() *cobra.Command {
	var priority, due string

	cmd := &cobra.Command{
		Use:   "add <customer-id> <description>",
		Short: "Create a reminder for a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := time.Parse(time.RFC3339, due)
			if err != nil {
				return fmt.Errorf("--due must be RFC3339, e.g. 2026-09-20T09:00:00Z: %v", err)
			}

			reminder, err := mutations.CreateReminder(cmd.Context(), args[0], client.ReminderParams{
				Description: args[1],
				DueDate:     dueDate,
				Priority:    priority,
			})
			if err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), "reminder", colors.Faint("("+reminder.ID+")"), views.FormatDue(*reminder, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", client.PriorityMedium, "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "due date, RFC3339")
	cmd.MarkFlagRequired("due")

	return cmd
}

// createReminderActionCmd covers complete/reopen/rm - the three
// actions share the same shape: customer id + reminder id in, cache
// reconciled before the command returns.
func createReminderActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <customer-id> <reminder-id>", action),
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			customerID, reminderID := args[0], args[1]

			var err error
			switch action {
			case "complete":
				_, err = mutations.CompleteReminder(ctx, customerID, reminderID)
			case "reopen":
				_, err = mutations.ReopenReminder(ctx, customerID, reminderID)
			default:
				err = mutations.DeleteReminder(ctx, customerID, reminderID)
			}
			if err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), action, reminderID)
			return nil
		},
	}
}

func createReminderStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate reminder counts and completion rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := queries.ReminderAnalytics(cmd.Context())
			if snapshot.Err != nil {
				return snapshot.Err
			}
			if snapshot.Skipped {
				return fmt.Errorf("not signed in - run %s first", colors.Blue("clientele login"))
			}

			stats := views.StatsFromAnalytics(snapshot.Data)
			fmt.Printf("total: %d  active: %d  overdue: %s  completed: %d\n",
				stats.Total, stats.Active, colors.Red(stats.Overdue), stats.Completed)
			fmt.Printf("completion rate: %s\n", colors.Green(fmt.Sprintf("%.0f%%", stats.CompletionRate)))
			return nil
		},
	}
}

func renderReminders(reminders []client.Reminder) {
	now := time.Now()
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintln(writer, "ID\tCUSTOMER\tPRIORITY\tDUE\tDESCRIPTION")
	for _, reminder := range reminders {
		customerName := reminder.CustomerID
		if reminder.Customer != nil {
			customerName = reminder.Customer.FirstName + " " + reminder.Customer.LastName
		}

		due := views.FormatDue(reminder, now)
		if reminder.Overdue(now) {
			due = colors.Red(due)
		}

		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			reminder.ID, customerName, reminder.Priority, due, reminder.Description)
	}
}
