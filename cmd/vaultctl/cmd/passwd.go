// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

func newPasswdCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the master password and re-encrypt the vault",
		Long: `passwd re-encrypts every item under the new password and then changes the
account password. The new password is read from VAULT_NEW_PASSWORD or from the
line after the master password.

If it stops part way, run it again with the same passwords.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := newLineReader(cmd.InOrStdin())
			return app.withSession(cmd, in, func(ctx context.Context, vault service.ClientVaultService, master string) error {
				newPassword, err := in.secret(envNewPassword, "new master password")
				if err != nil {
					return err
				}
				if newPassword == master {
					return errors.New("new password must differ from the current one")
				}

				if err = vault.ChangePassword(ctx, master, newPassword); err != nil {
					var pce *service.PasswordChangeError
					if errors.As(err, &pce) {
						w := cmd.ErrOrStderr()
						fmt.Fprintf(w, "re-encrypted %d of %d items\n", pce.Completed, pce.Total)
						if pce.FailedItemID != "" {
							fmt.Fprintf(w, "failed at item %s\n", pce.FailedItemID)
						}
						fmt.Fprintln(w, "the account still uses the current password; run passwd again with the same passwords")
					}
					return fmt.Errorf("passwd: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "master password changed")
				return nil
			})
		},
	}
}
