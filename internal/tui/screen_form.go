// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// formModel adds a new item or edits an existing one.
type formModel struct {
	ctx   context.Context
	vault service.ClientVaultService

	id         string
	form       focusRing
	submitting bool
	errMsg     string
}

func newFormModel(ctx context.Context, vault service.ClientVaultService) *formModel {
	m := &formModel{ctx: ctx, vault: vault}
	m.load(models.VaultItem{})
	return m
}

func (m *formModel) load(item models.VaultItem) {
	site := newInput("site", 256, false)
	site.SetValue(item.Site)
	username := newInput("username", 256, false)
	username.SetValue(item.Username)
	password := newInput("password", 1024, true)
	password.SetValue(item.Password)

	m.id = item.ID
	m.form = newFocusRing(site, username, password)
	m.submitting = false
	m.errMsg = ""
}

func (m *formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editItemMsg:
		m.load(msg.item)
		return m, textinput.Blink

	case itemSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.load(models.VaultItem{})
		return m, func() tea.Msg { return NavigateTo{Page: pageVault, Payload: msg} }

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.load(models.VaultItem{})
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

func (m *formModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	item := models.VaultItem{
		Site:     strings.TrimSpace(m.form.value(0)),
		Username: strings.TrimSpace(m.form.value(1)),
		Password: m.form.value(2),
	}
	if item.Site == "" || item.Username == "" || item.Password == "" {
		m.errMsg = "site, username and password are required"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, vault, id := m.ctx, m.vault, m.id
	return func() tea.Msg {
		var (
			saved models.VaultItem
			err   error
		)
		if id == "" {
			saved, err = vault.AddItem(ctx, item)
		} else {
			saved, err = vault.EditItem(ctx, id, item)
		}
		return itemSavedMsg{created: id == "", item: saved, snapshot: takeSnapshot(vault), err: err}
	}
}

func (m *formModel) View() string {
	var b strings.Builder

	b.WriteString("Site     │ ")
	b.WriteString(m.form.inputs[0].View())
	b.WriteString("\nUsername │ ")
	b.WriteString(m.form.inputs[1].View())
	b.WriteString("\nPassword │ ")
	b.WriteString(m.form.inputs[2].View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Encrypting and saving...]")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}

	title := "NEW PASSWORD"
	if m.id != "" {
		title = "EDIT PASSWORD"
	}
	return renderPage(title, b.String(), "esc: back │ tab: next field │ enter: save")
}
