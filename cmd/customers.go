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
	"strings"
	"text/tabwriter"

	"github.com/clientelehq/clientele/client"
	"github.com/clientelehq/clientele/colors"
	"github.com/clientelehq/clientele/views"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

func createCustomersCmd() *cobra.Command {
	var (
		sortField  string
		descending bool
		search     string
	)

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers, or search by name, email or phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Warm the full list first - the search fallback filters
			// over it when the server-side search is unreachable.
			snapshot := queries.Customers(ctx)
			if search != "" {
				snapshot = queries.SearchCustomers(ctx, search)
			}

			if snapshot.Err != nil {
				return snapshot.Err
			}
			if snapshot.Skipped {
				return fmt.Errorf("not signed in - run %s first", colors.Blue("clientele login"))
			}

			locale := language.Make(appCfg.Sync.Locale)
			customers := views.SortCustomers(snapshot.Data, sortField, descending, locale)

			renderCustomers(customers)
			if snapshot.Stale {
				fmt.Fprintln(os.Stderr, colors.Faint("(showing cached data, refreshing in background)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortField, "sort", views.SortByName, "sort by 'name', 'email' or 'joined'")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort in descending order")
	cmd.Flags().StringVar(&search, "search", "", "search customers by name, email or phone")

	cmd.AddCommand(createCustomerAddCmd())
	cmd.AddCommand(createCustomerRemoveCmd())
	cmd.AddCommand(createCustomerShowCmd())
	cmd.AddCommand(createNoteAddCmd())
	cmd.AddCommand(createPhoneAddCmd())

	return cmd
}

func createCustomerAddCmd() *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, err := mutations.CreateCustomer(cmd.Context(), client.CreateCustomerParams{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
			})
			if err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), "created", customer.FullName(), colors.Faint("("+customer.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "customer first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "customer last name")
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func createCustomerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <customer-id>",
		Short: "Delete a customer and everything attached to them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mutations.DeleteCustomer(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), "deleted customer", args[0])
			return nil
		},
	}
}

func createCustomerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <customer-id>",
		Short: "Show a customer's contact details, notes and reminders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			customerID := args[0]

			phones := queries.Phones(ctx, customerID)
			addresses := queries.Addresses(ctx, customerID)
			notes := queries.Notes(ctx, customerID)
			reminders := queries.Reminders(ctx, customerID)

			for _, err := range []error{phones.Err, addresses.Err, notes.Err, reminders.Err} {
				if err != nil {
					return err
				}
			}

			fmt.Println(colors.Blue("Phones"))
			for _, phone := range phones.Data {
				fmt.Printf("  %s %s\n", phone.Number, colors.Faint("("+phone.Designation+")"))
			}

			fmt.Println(colors.Blue("Addresses"))
			for _, address := range addresses.Data {
				fmt.Printf("  [%s]\n%s\n", address.Type, indent(views.FormatAddress(address), "  "))
			}

			fmt.Println(colors.Blue("Notes"))
			for _, note := range notes.Data {
				fmt.Printf("  - %s\n", note.Content)
			}

			fmt.Println(colors.Blue("Reminders"))
			renderReminders(views.SortReminders(reminders.Data))

			return nil
		},
	}
}

func createNoteAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <customer-id> <content>",
		Short: "Attach a free-text note to a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := mutations.CreateNote(cmd.Context(), args[0], client.NoteParams{Content: args[1]})
			if err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), "added note", colors.Faint("("+note.ID+")"))
			return nil
		},
	}
}

func createPhoneAddCmd() *cobra.Command {
	var designation string

	cmd := &cobra.Command{
		Use:   "phone <customer-id> <number>",
		Short: "Attach a phone number (E.164) to a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			phone, err := mutations.CreatePhone(cmd.Context(), args[0], client.PhoneParams{
				Number:      args[1],
				Designation: designation,
			})
			if err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), "added phone", phone.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&designation, "designation", client.PhoneMobile, "mobile, home, work or other")

	return cmd
}

func renderCustomers(customers []client.Customer) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintln(writer, "ID\tNAME\tEMAIL\tJOINED")
	for _, customer := range customers {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			customer.ID, customer.FullName(), customer.Email, customer.CreatedAt.Format("2006-01-02"))
	}
}

func indent(text, prefix string) string {
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}
