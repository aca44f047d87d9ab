// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Page names understood by the root model.
const (
	pageAuth   = "auth"
	pageVault  = "vault"
	pageForm   = "form"
	pagePasswd = "passwd"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// vaultSnapshot is a copy of the session state taken inside a command.
// Pages render snapshots only and never read the session directly.
type vaultSnapshot struct {
	username string
	items    []models.VaultItem
	corrupt  []service.CorruptItem
	status   service.SessionStatus
}

func takeSnapshot(vault service.ClientVaultService) vaultSnapshot {
	return vaultSnapshot{
		username: vault.Username(),
		items:    vault.Items(),
		corrupt:  vault.Corrupt(),
		status:   vault.Status(),
	}
}

type authDoneMsg struct {
	signup   bool
	result   service.LoginResult
	snapshot vaultSnapshot
	err      error
}

// editItemMsg opens the form page. An empty item ID means a new item.
type editItemMsg struct {
	item models.VaultItem
}

type itemSavedMsg struct {
	created  bool
	item     models.VaultItem
	snapshot vaultSnapshot
	err      error
}

type itemDeletedMsg struct {
	id       string
	snapshot vaultSnapshot
	err      error
}

type migrateDoneMsg struct {
	migrated int
	snapshot vaultSnapshot
	err      error
}

type passwordChangedMsg struct {
	snapshot vaultSnapshot
	err      error
}

type copiedMsg struct {
	what string
	err  error
}

type loggedOutMsg struct{}

type clearStatusMsg struct{}
