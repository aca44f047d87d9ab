// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// ClientVaultService is the contract the presentation layers (TUI and
// vaultctl) use to drive a vault session. *VaultSession implements it.
type ClientVaultService interface {
	// Signup registers a new account and starts a session with an empty vault.
	Signup(ctx context.Context, username, password string) (LoginResult, error)

	// Login authenticates, derives the encryption key, decrypts every stored
	// item and migrates legacy plaintext items in the background of the call.
	// It succeeds whenever the credentials are valid.
	Login(ctx context.Context, username, password string) (LoginResult, error)

	// MigratePending retries persistence of legacy items that could not be
	// re-encrypted during login. It returns the number of items migrated.
	MigratePending(ctx context.Context) (int, error)

	// AddItem encrypts item, stores it and returns it with its server id.
	AddItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)

	// EditItem re-encrypts and replaces the item with the given id.
	EditItem(ctx context.Context, id string, item models.VaultItem) (models.VaultItem, error)

	// DeleteItem removes the item with the given id from storage and memory.
	DeleteItem(ctx context.Context, id string) error

	// ChangePassword re-encrypts the whole vault under a key derived from
	// newPassword and then changes the account password. On a partial failure
	// it returns *PasswordChangeError.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// Logout destroys the key and drops every plaintext item.
	Logout()

	Items() []models.VaultItem
	Corrupt() []CorruptItem
	Username() string
	UserID() int64
	State() SessionState
	Status() SessionStatus
}
