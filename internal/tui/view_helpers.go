// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const uiDivider = "──────────────────────────────────────────────────────"

// maskedPassword is shown instead of a hidden password. Its length does not
// depend on the secret.
const maskedPassword = "••••••••"

var cursorMode = cursor.CursorBlink

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return appStyle.Render(b.String())
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Cursor.SetMode(cursorMode)
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

// focusRing moves focus across a set of inputs.
type focusRing struct {
	inputs []textinput.Model
	focus  int
}

func newFocusRing(inputs ...textinput.Model) focusRing {
	r := focusRing{inputs: inputs}
	r.inputs[0].Focus()
	return r
}

func (r *focusRing) move(delta int) {
	r.inputs[r.focus].Blur()
	r.focus = (r.focus + delta + len(r.inputs)) % len(r.inputs)
	r.inputs[r.focus].Focus()
}

func (r *focusRing) value(i int) string {
	return r.inputs[i].Value()
}

func (r *focusRing) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.inputs[r.focus], cmd = r.inputs[r.focus].Update(msg)
	return cmd
}
