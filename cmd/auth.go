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

	"github.com/clientelehq/clientele/client"
	"github.com/clientelehq/clientele/colors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func createLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			if err := currentSession.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}
			if err := currentSession.Save(); err != nil {
				logg.Warnf("unable to persist session: %v", err)
			}

			fmt.Println(colors.Green("✓"), "signed in as", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.MarkFlagRequired("email")

	return cmd
}

func createSignupCmd() *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			password, err := promptPassword("Choose a password: ")
			if err != nil {
				return err
			}

			result, err := apiClient.Signup(ctx, client.SignupParams{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Password:  password,
			})
			if err != nil {
				return err
			}

			// The backend minted a one-time custom token - trade it in
			// for a session with the identity provider.
			if err := currentSession.SignInWithCustomToken(ctx, result.CustomToken); err != nil {
				return err
			}
			if err := currentSession.Save(); err != nil {
				logg.Warnf("unable to persist session: %v", err)
			}

			fmt.Println(colors.Green("✓"), "account created, signed in as", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "your first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "your last name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func createLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			currentSession.SignOut()
			if err := currentSession.Save(); err != nil {
				return err
			}

			fmt.Println(colors.Green("✓"), "signed out")
			return nil
		},
	}
}

func createWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := apiClient.Me(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s %s <%s>\n", identity.FirstName, identity.LastName, identity.Email)
			return nil
		},
	}
}

func createHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Health(cmd.Context()); err != nil {
				return fmt.Errorf("%s %v", colors.Red("backend unreachable:"), err)
			}

			fmt.Println(colors.Green("✓"), "backend is up")
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(0)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}
