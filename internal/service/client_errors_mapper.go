// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error.
// Anything without a business meaning is wrapped in ErrCollaborator.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgMissingCredentials:
			return ErrValidationMissingCredentials
		case app.MsgMissingItemFields:
			return ErrValidationMissingItemFields
		case app.MsgNoUserIDProvided:
			return ErrValidationNoUserID
		}
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)

	case errors.Is(err, adapter.ErrInvalidCredentials):
		if msg == app.MsgTokenIsExpiredOrInvalid {
			return fmt.Errorf("%w: %w", ErrCollaborator, ErrTokenIsExpiredOrInvalid)
		}
		return ErrInvalidCredentials

	case errors.Is(err, adapter.ErrForbidden):
		return ErrAccessDenied

	case errors.Is(err, adapter.ErrNotFound):
		return ErrItemNotFound

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgUsernameAlreadyExists {
			return ErrUsernameTaken
		}
	}

	return fmt.Errorf("%w: %w", ErrCollaborator, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
