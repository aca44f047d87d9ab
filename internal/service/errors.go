// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrUsernameTaken = errors.New("username already taken")
	ErrItemNotFound  = errors.New("vault item not found")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrValidationMissingCredentials = errors.New("username and password are required")
	ErrValidationMissingItemFields  = errors.New("site, username and password are required")
	ErrValidationNoUserID           = errors.New("no user ID was given")
	ErrValidationNoItemID           = errors.New("no item ID was given")

	// ErrCollaborator wraps every failure of the server or the transport
	// that has no more specific meaning to the vault.
	ErrCollaborator = errors.New("server request failed")

	ErrAccessDenied = errors.New("access to another user's data denied")

	// ErrInvalidNewPassword rejects a new master password the account
	// service would refuse, before any item is re-encrypted.
	ErrInvalidNewPassword = errors.New("new master password is not acceptable")

	ErrSessionNotActive     = errors.New("vault session is not active")
	ErrSessionAlreadyActive = errors.New("vault session is already active")
)

// PasswordChangeError reports a password change that stopped part way.
//
// Items [0, Completed) of the vault are stored under the new key, the rest are
// still under the old key. The account password and the session key are left
// unchanged, so retrying the change with the same passwords converges.
type PasswordChangeError struct {
	Completed    int
	Total        int
	FailedItemID string
	Err          error
}

func (e *PasswordChangeError) Error() string {
	if e.FailedItemID == "" {
		return fmt.Sprintf("password change stopped after %d of %d items: %v", e.Completed, e.Total, e.Err)
	}
	return fmt.Sprintf("password change failed at item %s (%d of %d re-encrypted): %v",
		e.FailedItemID, e.Completed, e.Total, e.Err)
}

func (e *PasswordChangeError) Unwrap() error {
	return e.Err
}
