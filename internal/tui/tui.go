// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the Bubble Tea front end of the vault client.
//
// Every vault operation runs inside a tea.Cmd and reports back with a message
// carrying a [vaultSnapshot]; models never touch the session outside of
// commands, and at most one vault command is in flight at a time.
package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// TUI runs the interactive client.
type TUI struct {
	vault     service.ClientVaultService
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(vault service.ClientVaultService, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	if log == nil {
		log = logger.Nop()
	}
	return &TUI{vault: vault, buildInfo: buildInfo, logger: log}
}

// Run blocks until the user quits or ctx is cancelled. The session is logged
// out on return so that no key or plaintext outlives the program.
func (t *TUI) Run(ctx context.Context) error {
	defer t.vault.Logout()

	root := newRootModel(ctx, t.vault, t.buildInfo, clipboard.WriteAll)
	if _, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	t.logger.Info().Msg("tui closed")
	return nil
}
