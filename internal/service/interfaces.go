// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// AuthService owns accounts and bearer tokens on the server.
type AuthService interface {
	// Signup creates an account with a bcrypt hash of the password.
	Signup(ctx context.Context, credentials models.Credentials) (models.User, error)
	// Login verifies credentials. Accounts still holding a legacy plaintext
	// password are upgraded to bcrypt on success.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	// ChangePassword replaces the password after verifying oldPassword.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultItemService stores ciphered items on behalf of their owner.
type VaultItemService interface {
	ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error)
	CreateItem(ctx context.Context, userID int64, fields models.CipheredFields) (models.CipheredItem, error)
	UpdateItem(ctx context.Context, id string, userID int64, fields models.CipheredFields) (models.CipheredItem, error)
	DeleteItem(ctx context.Context, id string, userID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// VaultItemServiceWrapper defines middleware composition for VaultItemService.
// Implementations wrap an existing VaultItemService to add behavior such as
// validation.
type VaultItemServiceWrapper interface {
	Wrap(VaultItemService) VaultItemService
}

// IDGenerator produces identifiers for new vault items.
type IDGenerator interface {
	Generate() string
}
