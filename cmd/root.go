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
	"path/filepath"
	"time"

	"github.com/clientelehq/clientele/client"
	"github.com/clientelehq/clientele/colors"
	"github.com/clientelehq/clientele/logger"
	"github.com/clientelehq/clientele/session"
	"github.com/clientelehq/clientele/shared"
	"github.com/clientelehq/clientele/syncer"
	"github.com/clientelehq/clientele/version"
	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	config  *viper.Viper
	appCfg  shared.Config

	logg = logger.NewLogger()

	currentSession *session.Session
	apiClient      *client.Client
	store          *syncer.Store
	queries        *syncer.Queries
	mutations      *syncer.Mutations
	pending        *syncer.Pending
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig, initApp)

	rootCmd = createRootCmd()
	rootCmd.Version = fmt.Sprintf("v%s", version.Version)

	rootCmd.AddCommand(createCustomersCmd())
	rootCmd.AddCommand(createRemindersCmd())
	rootCmd.AddCommand(createLoginCmd())
	rootCmd.AddCommand(createSignupCmd())
	rootCmd.AddCommand(createLogoutCmd())
	rootCmd.AddCommand(createWhoamiCmd())
	rootCmd.AddCommand(createHealthCmd())
	rootCmd.AddCommand(createWatchCmd())
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "clientele",
		Short: `clientele is a CLI dashboard for your CRM backend.

Browse customers, contact details and notes, and keep on top of
due-date reminders - all data lives on the backend, the CLI only
holds a cache.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.clientele.yaml)")

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env in the working directory is picked up first, mainly for
	// development setups.
	godotenv.Load()

	config = viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// If config file is not found, create one using defaultConfigValue
		configFilePath := filepath.Join(home, ".clientele.yaml")
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			err = os.WriteFile(configFilePath, []byte(defaultConfigValue()), 0600)
			cobra.CheckErr(err)
		}

		config.AddConfigPath(home)
		config.SetConfigType("yaml")
		config.SetConfigName(".clientele.yaml")
	}

	// Allow the important endpoints to be set from the environment
	// without touching the config file. Env vars win over the file.
	config.BindEnv("api.baseUrl", "CLIENTELE_API_URL")
	config.BindEnv("identity.baseUrl", "CLIENTELE_IDENTITY_URL")
	config.BindEnv("identity.apiKey", "CLIENTELE_IDENTITY_API_KEY")

	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", config.ConfigFileUsed())
	}

	cobra.CheckErr(config.Unmarshal(&appCfg))
	if err := validator.New().Struct(appCfg); err != nil {
		cobra.CheckErr(fmt.Errorf("%s %v", colors.Red("invalid config:"), err))
	}
}

// initApp wires the session, API client & sync layer together.
func initApp() {
	currentSession = session.NewSession(session.NewIdentityClient(appCfg.Identity), logg)
	if err := currentSession.Restore(); err != nil {
		logg.Warnf("unable to restore saved session: %v", err)
	}

	apiClient = client.NewClient(appCfg.API, currentSession, logg)
	store = syncer.NewStore(time.Duration(appCfg.Sync.DedupeWindowSeconds) * time.Second)
	pending = syncer.NewPending()
	queries = syncer.NewQueries(apiClient, store, currentSession, logg)

	notifier := syncer.NotifierFunc(func(msg string) {
		fmt.Fprintln(os.Stderr, colors.Red("✗"), msg)
	})
	mutations = syncer.NewMutations(apiClient, store, currentSession, pending, notifier, logg)
}

// defaultConfigValue returns the default content for .clientele.yaml
func defaultConfigValue() string {
	return `api:
  baseUrl: "http://localhost:8080"
  timeoutSeconds: 30

identity:
  baseUrl: "http://localhost:9099"
  apiKey: ""

sync:
  dedupeWindowSeconds: 2
  customerPollSeconds: 60
  timeZone: "UTC"
  locale: "en"
`
}
