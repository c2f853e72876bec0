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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clientelehq/clientele/colors"
	"github.com/clientelehq/clientele/syncer"
	"github.com/clientelehq/clientele/views"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

func createWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard: customers and reminders, refreshed periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pollInterval := time.Duration(appCfg.Sync.CustomerPollSeconds) * time.Second
			poller := syncer.NewPoller(queries, appCfg.Sync.TimeZone, pollInterval, logg)
			if err := poller.Start(); err != nil {
				return err
			}
			defer poller.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			online := true
			render := time.NewTicker(5 * time.Second)
			defer render.Stop()

			renderDashboard()
			for {
				select {
				case <-stop:
					return nil
				case <-render.C:
					// Reconnect detection: a health check succeeding
					// after a failure means the cache may be arbitrarily
					// stale, so drop & refetch.
					err := apiClient.Health(ctx)
					if err == nil && !online {
						logg.Info("back online, refreshing all cached data")
						queries.Resume(ctx)
					}
					online = err == nil

					renderDashboard()
				}
			}
		},
	}
}

func timeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func renderDashboard() {
	ctx, cancel := timeoutContext()
	defer cancel()

	customers := queries.Customers(ctx)
	reminders := queries.AllReminders(ctx, "", true)

	fmt.Print("\033[H\033[2J") // clear screen
	fmt.Println(colors.Blue("CUSTOMERS"), colors.Faint(time.Now().Format(time.Kitchen)))
	if customers.Err != nil {
		fmt.Println(colors.Yellow("showing stale data:"), customers.Err)
	}
	locale := language.Make(appCfg.Sync.Locale)
	renderCustomers(views.SortCustomers(customers.Data, views.SortByName, false, locale))

	fmt.Println()
	fmt.Println(colors.Blue("REMINDERS"))
	if reminders.Err != nil {
		fmt.Println(colors.Yellow("showing stale data:"), reminders.Err)
	}
	renderReminders(views.SortReminders(reminders.Data))
}
