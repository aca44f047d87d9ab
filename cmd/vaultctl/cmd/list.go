// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

const hiddenPassword = "********"

func newListCmd(app *cliApp) *cobra.Command {
	var show, asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the vault, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := newLineReader(cmd.InOrStdin())
			return app.withSession(cmd, in, func(_ context.Context, vault service.ClientVaultService, _ string) error {
				items := vault.Items()
				if !show {
					for i := range items {
						items[i].Password = hiddenPassword
					}
				}

				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(items)
				}

				corrupt := vault.Corrupt()
				if len(items) == 0 && len(corrupt) == 0 {
					fmt.Fprintln(out, "vault is empty")
					return nil
				}
				fmt.Fprintln(out, renderTable(items, corrupt))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print passwords in clear text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")

	return cmd
}

func renderTable(items []models.VaultItem, corrupt []service.CorruptItem) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "SITE", "USERNAME", "PASSWORD")

	for _, it := range items {
		t.Row(it.ID, it.Site, it.Username, it.Password)
	}
	for _, c := range corrupt {
		t.Row(c.ID, "[corrupt: "+strings.Join(c.Fields, ", ")+"]", "", "")
	}

	return t.Render()
}
