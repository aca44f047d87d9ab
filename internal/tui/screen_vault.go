// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

var statusTTL = 3 * time.Second

// row is one line of the vault list: a decrypted item or a corrupt one.
type row struct {
	item    models.VaultItem
	corrupt *service.CorruptItem
}

func (r row) id() string {
	if r.corrupt != nil {
		return r.corrupt.ID
	}
	return r.item.ID
}

// vaultModel lists the vault, most recent first, with passwords masked.
type vaultModel struct {
	ctx    context.Context
	vault  service.ClientVaultService
	copyFn func(string) error

	snapshot vaultSnapshot
	idx      int
	reveal   bool

	confirmDelete bool
	busy          bool

	warnings []string
	status   string
	errMsg   string
}

func newVaultModel(ctx context.Context, vault service.ClientVaultService, copyFn func(string) error) *vaultModel {
	return &vaultModel{ctx: ctx, vault: vault, copyFn: copyFn}
}

func (m *vaultModel) Init() tea.Cmd {
	return nil
}

func (m *vaultModel) rows() []row {
	rows := make([]row, 0, len(m.snapshot.items)+len(m.snapshot.corrupt))
	for _, it := range m.snapshot.items {
		rows = append(rows, row{item: it})
	}
	for i := range m.snapshot.corrupt {
		rows = append(rows, row{corrupt: &m.snapshot.corrupt[i]})
	}
	return rows
}

func (m *vaultModel) selected() (row, bool) {
	rows := m.rows()
	if m.idx < 0 || m.idx >= len(rows) {
		return row{}, false
	}
	return rows[m.idx], true
}

func (m *vaultModel) setSnapshot(s vaultSnapshot) {
	m.snapshot = s
	if n := len(m.rows()); m.idx >= n {
		m.idx = max(n-1, 0)
	}
}

func (m *vaultModel) setStatus(s string) tea.Cmd {
	m.status = s
	m.errMsg = ""
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *vaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.setSnapshot(msg.snapshot)
		m.idx = 0
		m.reveal = false
		m.warnings = loginWarnings(msg.result)
		return m, nil

	case itemSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.setSnapshot(msg.snapshot)
		if msg.created {
			m.idx = 0
			return m, m.setStatus("item added")
		}
		return m, m.setStatus("item saved")

	case itemDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.setSnapshot(msg.snapshot)
		m.warnings = m.currentWarnings()
		return m, m.setStatus("item deleted")

	case migrateDoneMsg:
		m.busy = false
		m.setSnapshot(msg.snapshot)
		m.warnings = m.currentWarnings()
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("migrated %d, still pending %d: %s",
				msg.migrated, msg.snapshot.status.PendingMigration, humanizeError(msg.err))
			return m, nil
		}
		return m, m.setStatus(fmt.Sprintf("migrated %d legacy item(s)", msg.migrated))

	case passwordChangedMsg:
		m.setSnapshot(msg.snapshot)
		m.warnings = m.currentWarnings()
		return m, m.setStatus("master password changed")

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "clipboard: " + msg.err.Error()
			return m, nil
		}
		return m, m.setStatus(msg.what + " copied to clipboard")

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *vaultModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirmDelete = false
			return m, m.deleteSelected()
		case key.Matches(msg, keys.no):
			m.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.rows())-1 {
			m.idx++
		}
	case key.Matches(msg, keys.reveal):
		m.reveal = !m.reveal
	case key.Matches(msg, keys.copy):
		return m, m.copySelected(true)
	case key.Matches(msg, keys.copyUser):
		return m, m.copySelected(false)
	case key.Matches(msg, keys.newItem):
		if m.busy {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageForm, Payload: editItemMsg{}} }
	case key.Matches(msg, keys.edit):
		r, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		if r.corrupt != nil {
			m.errMsg = "corrupt items cannot be edited, only deleted"
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageForm, Payload: editItemMsg{item: r.item}} }
	case key.Matches(msg, keys.delete):
		if _, ok := m.selected(); ok && !m.busy {
			m.confirmDelete = true
		}
	case key.Matches(msg, keys.migrate):
		return m, m.retryMigration()
	case key.Matches(msg, keys.passwd):
		if m.busy {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pagePasswd} }
	case key.Matches(msg, keys.logout):
		if m.busy {
			return m, nil
		}
		vault := m.vault
		return m, func() tea.Msg {
			vault.Logout()
			return loggedOutMsg{}
		}
	}

	return m, nil
}

func (m *vaultModel) copySelected(password bool) tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	if r.corrupt != nil {
		m.errMsg = "corrupt items cannot be copied"
		return nil
	}

	what, text := "username", r.item.Username
	if password {
		what, text = "password", r.item.Password
	}

	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{what: what, err: copyFn(text)}
	}
}

func (m *vaultModel) deleteSelected() tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}

	m.busy = true
	ctx, vault, id := m.ctx, m.vault, r.id()
	return func() tea.Msg {
		err := vault.DeleteItem(ctx, id)
		return itemDeletedMsg{id: id, snapshot: takeSnapshot(vault), err: err}
	}
}

func (m *vaultModel) retryMigration() tea.Cmd {
	if m.busy || m.snapshot.status.PendingMigration == 0 {
		return nil
	}

	m.busy = true
	ctx, vault := m.ctx, m.vault
	return func() tea.Msg {
		n, err := vault.MigratePending(ctx)
		return migrateDoneMsg{migrated: n, snapshot: takeSnapshot(vault), err: err}
	}
}

func loginWarnings(result service.LoginResult) []string {
	var w []string
	if result.MigratedCount > 0 {
		w = append(w, fmt.Sprintf("%d legacy item(s) were encrypted with your key", result.MigratedCount))
	}
	if n := len(result.PendingMigration); n > 0 {
		w = append(w, fmt.Sprintf("%d legacy item(s) are not encrypted on the server yet, press m to retry", n))
	}
	if n := len(result.Corrupt); n > 0 {
		w = append(w, fmt.Sprintf("%d item(s) could not be decrypted and are marked corrupt", n))
	}
	return w
}

func (m *vaultModel) currentWarnings() []string {
	var w []string
	if n := m.snapshot.status.PendingMigration; n > 0 {
		w = append(w, fmt.Sprintf("%d legacy item(s) are not encrypted on the server yet, press m to retry", n))
	}
	if n := m.snapshot.status.Stranded; n > 0 {
		w = append(w, fmt.Sprintf("%d item(s) already use a new password from an unfinished change", n))
	}
	if n := len(m.snapshot.corrupt); n > 0 {
		w = append(w, fmt.Sprintf("%d item(s) could not be decrypted and are marked corrupt", n))
	}
	return w
}

func (m *vaultModel) View() string {
	var b strings.Builder

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString("The vault is empty. Press n to add a password.\n")
	}

	b.WriteString(fmt.Sprintf("%-28s %-24s %s\n", "Site", "Username", "Password"))
	for i, r := range rows {
		var line string
		if r.corrupt != nil {
			line = fmt.Sprintf("%-28s %s", fitText(r.corrupt.ID, 28),
				"[corrupt: "+strings.Join(r.corrupt.Fields, ", ")+"]")
		} else {
			password := maskedPassword
			if m.reveal {
				password = r.item.Password
			}
			line = fmt.Sprintf("%-28s %-24s %s", fitText(r.item.Site, 28), fitText(r.item.Username, 24), password)
		}

		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, w := range m.warnings {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("! " + w))
	}

	if m.confirmDelete {
		if r, ok := m.selected(); ok {
			label := r.item.Site
			if r.corrupt != nil {
				label = r.corrupt.ID
			}
			b.WriteString("\n\n")
			b.WriteString(overlayStyle.Render("Delete " + label + "? (y/n)"))
		}
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}

	title := "VAULT"
	if m.snapshot.username != "" {
		title = "VAULT · " + m.snapshot.username
	}
	if st := m.snapshot.status; !st.Synced() {
		title += fmt.Sprintf(" · %d unsynced", st.PendingWrites())
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ r: reveal │ c: copy password │ u: copy username │ m: retry migration │ P: change password │ L: logout │ q: quit")
}
