// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the vault server.
//
// The primary abstraction is [ServerAdapter], which decouples the vault
// session from the protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrInvalidCredentials] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the account and storage services.
// Every value it moves is already encrypted; implementations never see
// plaintext vault fields.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// An empty token clears it.
	SetToken(token string)

	// Token returns the bearer token currently stored, or "".
	Token() string

	// Register creates an account and stores the issued bearer token.
	// Returns [ErrConflict] (wrapped) when the username is taken.
	Register(ctx context.Context, username, password string) (models.User, error)

	// Authenticate verifies credentials, stores the issued bearer token and
	// returns the account with its stored items, newest first.
	// Returns [ErrInvalidCredentials] (wrapped) on bad credentials.
	Authenticate(ctx context.Context, username, password string) (models.User, []models.CipheredItem, error)

	// ListItems returns every stored item of userID, newest first.
	ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error)

	// CreateItem stores a new item and returns the id assigned by the server.
	CreateItem(ctx context.Context, userID int64, fields models.CipheredFields) (string, error)

	// UpdateItem overwrites all three fields of an item.
	// Returns [ErrNotFound] (wrapped) for an unknown id.
	UpdateItem(ctx context.Context, id string, userID int64, fields models.CipheredFields) error

	// DeleteItem removes an item. Returns [ErrNotFound] (wrapped) for an
	// unknown id.
	DeleteItem(ctx context.Context, id string, userID int64) error

	// ChangeAccountPassword replaces the account password. Returns
	// [ErrInvalidCredentials] (wrapped) when oldPassword is wrong.
	ChangeAccountPassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}
