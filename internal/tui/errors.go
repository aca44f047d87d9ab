// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

// humanizeError turns service errors into one-line messages for the status
// area.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var pce *service.PasswordChangeError
	switch {
	case errors.As(err, &pce):
		return fmt.Sprintf(
			"password change stopped: %d of %d items already use the new password. "+
				"Retry with the same old and new passwords to finish.",
			pce.Completed, pce.Total)
	case errors.Is(err, service.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, service.ErrUsernameTaken):
		return "username already exists"
	case errors.Is(err, service.ErrItemNotFound):
		return "item no longer exists on the server"
	case errors.Is(err, service.ErrSessionNotActive):
		return "session is not active, log in again"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "network is down or the server is unavailable"
	}

	return err.Error()
}
