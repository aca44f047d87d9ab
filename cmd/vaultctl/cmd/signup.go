// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account with an empty vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.username == "" {
				return errNoUser
			}

			master, err := newLineReader(cmd.InOrStdin()).secret(envPassword, "master password")
			if err != nil {
				return err
			}

			vault, err := app.open(app.configPath)
			if err != nil {
				return err
			}
			defer vault.Logout()

			if _, err = vault.Signup(cmd.Context(), app.username, master); err != nil {
				return fmt.Errorf("signup: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "account %s created (id %d)\n", vault.Username(), vault.UserID())
			return nil
		},
	}
}
