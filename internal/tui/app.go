// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// rootModel is a TUI router:
// 1) keeps the active page
// 2) handles global quit and the build info overlay
// 3) handles NavigateTo and logout
// 4) delegates all other messages to the active page
type rootModel struct {
	ctx   context.Context
	vault service.ClientVaultService

	pages   map[string]tea.Model
	current string

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
}

func newRootModel(ctx context.Context, vault service.ClientVaultService, buildInfo models.AppBuildInfo, copyFn func(string) error) rootModel {
	return rootModel{
		ctx:   ctx,
		vault: vault,
		pages: map[string]tea.Model{
			pageAuth:   newAuthModel(ctx, vault),
			pageVault:  newVaultModel(ctx, vault, copyFn),
			pageForm:   newFormModel(ctx, vault),
			pagePasswd: newPasswdModel(ctx, vault),
		},
		current:   pageAuth,
		buildInfo: buildInfo,
	}
}

func (r rootModel) Init() tea.Cmd {
	return r.pages[r.current].Init()
}

func (r rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if r.current == pageAuth && key.Matches(msg, keys.buildInfo) {
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc) {
				r.showBuildInfo = false
			}
			return r, nil
		}

	case NavigateTo:
		if _, exists := r.pages[msg.Page]; !exists {
			return r, nil
		}
		r.showBuildInfo = false
		r.current = msg.Page
		if msg.Payload != nil {
			payload := msg.Payload
			return r, func() tea.Msg { return payload }
		}
		return r, r.pages[r.current].Init()

	case loggedOutMsg:
		// fresh pages drop every plaintext the old ones rendered
		fresh := newRootModel(r.ctx, r.vault, r.buildInfo, r.pages[pageVault].(*vaultModel).copyFn)
		return fresh, fresh.Init()
	}

	page, cmd := r.pages[r.current].Update(msg)
	r.pages[r.current] = page
	return r, cmd
}

func (r rootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	return r.pages[r.current].View()
}
