// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts. Passwords arrive already hashed.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and timestamps set.
	// Returns ErrUsernameAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns ErrUserNotFound when nothing matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// VaultItemRepository persists ciphered vault items. It never sees plaintext.
type VaultItemRepository interface {
	// ListItems returns every item of userID, newest first.
	ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error)
	CreateItem(ctx context.Context, item models.CipheredItem) (models.CipheredItem, error)
	// UpdateItem overwrites the three fields of the item matching ID and
	// UserID. Returns ErrItemNotFound when there is no such item.
	UpdateItem(ctx context.Context, item models.CipheredItem) (models.CipheredItem, error)
	DeleteItem(ctx context.Context, id string, userID int64) error
}

// ErrorClassificator maps driver specific errors onto [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
