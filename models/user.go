// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a vault account as seen by the account service.
// The client never receives the stored password representation.
type User struct {
	// UserID is the server-assigned identifier of the account.
	UserID int64 `json:"id"`

	// Username is the unique login of the account. On the client it is also
	// the salt of the vault key derivation, so renaming an account would make
	// every stored item undecryptable.
	Username string `json:"username"`

	// Password is the master password on the way in (signup/login requests)
	// and the bcrypt hash (or a legacy plaintext value) at the persistence
	// layer. It is never serialized in responses.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last password change.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
