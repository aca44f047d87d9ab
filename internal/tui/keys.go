// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	switchMode key.Binding
	buildInfo  key.Binding
	logout     key.Binding
	newItem    key.Binding
	edit       key.Binding
	delete     key.Binding
	reveal     key.Binding
	copy       key.Binding
	copyUser   key.Binding
	migrate    key.Binding
	passwd     key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q")),
	switchMode: key.NewBinding(key.WithKeys("ctrl+t")),
	buildInfo:  key.NewBinding(key.WithKeys("ctrl+v")),
	logout:     key.NewBinding(key.WithKeys("L")),
	newItem:    key.NewBinding(key.WithKeys("n")),
	edit:       key.NewBinding(key.WithKeys("e")),
	delete:     key.NewBinding(key.WithKeys("d")),
	reveal:     key.NewBinding(key.WithKeys("r")),
	copy:       key.NewBinding(key.WithKeys("c")),
	copyUser:   key.NewBinding(key.WithKeys("u")),
	migrate:    key.NewBinding(key.WithKeys("m")),
	passwd:     key.NewBinding(key.WithKeys("P")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
}
