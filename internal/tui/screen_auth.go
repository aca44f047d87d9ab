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
)

// authModel is the login/signup screen. ctrl+t switches between the two
// modes; signup asks for the password twice.
type authModel struct {
	ctx   context.Context
	vault service.ClientVaultService

	signup     bool
	form       focusRing
	submitting bool
	errMsg     string
}

func newAuthModel(ctx context.Context, vault service.ClientVaultService) *authModel {
	return &authModel{
		ctx:   ctx,
		vault: vault,
		form: newFocusRing(
			newInput("username", 64, false),
			newInput("master password", 256, true),
			newInput("repeat master password", 256, true),
		),
	}
}

func (m *authModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *authModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if done.err != nil {
			m.errMsg = humanizeError(done.err)
			return m, nil
		}
		m.errMsg = ""
		m.form.inputs[1].Reset()
		m.form.inputs[2].Reset()
		return m, func() tea.Msg { return NavigateTo{Page: pageVault, Payload: done} }
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.form.update(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.switchMode):
		m.signup = !m.signup
		m.errMsg = ""
		if !m.signup && m.form.focus == 2 {
			m.form.move(1)
		}
		return m, nil
	case key.Matches(keyMsg, keys.tab):
		m.moveFocus(1)
		return m, nil
	case key.Matches(keyMsg, keys.backtab):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		return m, m.submit()
	}

	return m, m.form.update(msg)
}

// moveFocus skips the repeat field in login mode.
func (m *authModel) moveFocus(delta int) {
	m.form.move(delta)
	if !m.signup && m.form.focus == 2 {
		m.form.move(delta)
	}
}

func (m *authModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	username := strings.TrimSpace(m.form.value(0))
	password := m.form.value(1)
	if username == "" || password == "" {
		m.errMsg = "username and password are required"
		return nil
	}
	if m.signup && password != m.form.value(2) {
		m.errMsg = "passwords do not match"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, vault, signup := m.ctx, m.vault, m.signup
	return func() tea.Msg {
		var (
			result service.LoginResult
			err    error
		)
		if signup {
			result, err = vault.Signup(ctx, username, password)
		} else {
			result, err = vault.Login(ctx, username, password)
		}
		if err != nil {
			return authDoneMsg{signup: signup, err: err}
		}
		return authDoneMsg{signup: signup, result: result, snapshot: takeSnapshot(vault)}
	}
}

func (m *authModel) View() string {
	var b strings.Builder

	b.WriteString("Username │ ")
	b.WriteString(m.form.inputs[0].View())
	b.WriteString("\nPassword │ ")
	b.WriteString(m.form.inputs[1].View())
	if m.signup {
		b.WriteString("\nRepeat   │ ")
		b.WriteString(m.form.inputs[2].View())
	}
	b.WriteString("\n")

	switch {
	case m.submitting && m.signup:
		b.WriteString("\n[Creating account...]")
	case m.submitting:
		b.WriteString("\n[Unlocking vault...]")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}

	title, other := "LOG IN", "sign up"
	if m.signup {
		title, other = "SIGN UP", "log in"
	}

	return renderPage(title, b.String(), "tab: next field │ enter: submit │ ctrl+t: "+other+" │ ctrl+v: about")
}
