// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

// passwdModel changes the master password. The whole vault is re-encrypted
// item by item, which can take a while and can stop part way.
type passwdModel struct {
	ctx   context.Context
	vault service.ClientVaultService

	form       focusRing
	submitting bool
	errMsg     string
	report     string
}

func newPasswdModel(ctx context.Context, vault service.ClientVaultService) *passwdModel {
	m := &passwdModel{ctx: ctx, vault: vault}
	m.reset()
	return m
}

func (m *passwdModel) reset() {
	m.form = newFocusRing(
		newInput("current master password", 256, true),
		newInput("new master password", 256, true),
		newInput("repeat new master password", 256, true),
	)
	m.submitting = false
	m.errMsg = ""
	m.report = ""
}

func (m *passwdModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *passwdModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case passwordChangedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.report = changeReport(msg.err)
			return m, nil
		}
		m.reset()
		return m, func() tea.Msg { return NavigateTo{Page: pageVault, Payload: msg} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			m.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageVault} }
		case key.Matches(msg, keys.tab):
			m.form.move(1)
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.form.move(-1)
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *passwdModel) submit() tea.Cmd {
	oldPassword, newPassword := m.form.value(0), m.form.value(1)
	switch {
	case oldPassword == "" || newPassword == "":
		m.errMsg = "both passwords are required"
		return nil
	case newPassword != m.form.value(2):
		m.errMsg = "new passwords do not match"
		return nil
	case newPassword == oldPassword:
		m.errMsg = "new password must differ from the current one"
		return nil
	}

	m.errMsg = ""
	m.report = ""
	m.submitting = true

	ctx, vault := m.ctx, m.vault
	return func() tea.Msg {
		err := vault.ChangePassword(ctx, oldPassword, newPassword)
		return passwordChangedMsg{snapshot: takeSnapshot(vault), err: err}
	}
}

func changeReport(err error) string {
	var pce *service.PasswordChangeError
	if !errors.As(err, &pce) {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Re-encrypted: %d of %d\n", pce.Completed, pce.Total)
	if pce.FailedItemID != "" {
		fmt.Fprintf(&b, "Failed at item: %s\n", pce.FailedItemID)
	}
	b.WriteString("The account still uses the current password. Retry before logging out.")
	return b.String()
}

func (m *passwdModel) View() string {
	var b strings.Builder

	b.WriteString("Current │ ")
	b.WriteString(m.form.inputs[0].View())
	b.WriteString("\nNew     │ ")
	b.WriteString(m.form.inputs[1].View())
	b.WriteString("\nRepeat  │ ")
	b.WriteString(m.form.inputs[2].View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Re-encrypting the vault... do not quit]")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}
	if m.report != "" {
		b.WriteString("\n\n")
		b.WriteString(overlayStyle.Render(m.report))
	}

	return renderPage("CHANGE MASTER PASSWORD", b.String(), "esc: back │ tab: next field │ enter: change")
}
