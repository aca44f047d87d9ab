// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

func newAddCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "add SITE USERNAME",
		Short: "Add a password; it is read after the master password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := newLineReader(cmd.InOrStdin())
			return app.withSession(cmd, in, func(ctx context.Context, vault service.ClientVaultService, _ string) error {
				password, err := in.secret(envItemPassword, "item password")
				if err != nil {
					return err
				}

				item, err := vault.AddItem(ctx, models.VaultItem{Site: args[0], Username: args[1], Password: password})
				if err != nil {
					return fmt.Errorf("add: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", item.ID)
				return nil
			})
		},
	}
}

func newEditCmd(app *cliApp) *cobra.Command {
	var (
		site, username string
		newPassword    bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the site, username or password of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if site == "" && username == "" && !newPassword {
				return fmt.Errorf("%w: nothing to change, pass --site, --username or --password", errMissingInput)
			}

			in := newLineReader(cmd.InOrStdin())
			return app.withSession(cmd, in, func(ctx context.Context, vault service.ClientVaultService, _ string) error {
				item, ok := findItem(vault.Items(), args[0])
				if !ok {
					return fmt.Errorf("edit %s: %w", args[0], service.ErrItemNotFound)
				}

				if site != "" {
					item.Site = site
				}
				if username != "" {
					item.Username = username
				}
				if newPassword {
					p, err := in.secret(envItemPassword, "item password")
					if err != nil {
						return err
					}
					item.Password = p
				}

				if _, err := vault.EditItem(ctx, item.ID, item); err != nil {
					return fmt.Errorf("edit %s: %w", item.ID, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", item.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "new site")
	cmd.Flags().StringVar(&username, "username", "", "new username")
	cmd.Flags().BoolVar(&newPassword, "password", false, "read a new item password after the master password")

	return cmd
}

func newRmCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID...",
		Short: "Delete items, corrupt ones included",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := newLineReader(cmd.InOrStdin())
			return app.withSession(cmd, in, func(ctx context.Context, vault service.ClientVaultService, _ string) error {
				for _, id := range args {
					if err := vault.DeleteItem(ctx, id); err != nil {
						return fmt.Errorf("rm %s: %w", id, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
				}
				return nil
			})
		},
	}
}

func findItem(items []models.VaultItem, id string) (models.VaultItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return models.VaultItem{}, false
}
