// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidItemID    = errors.New("invalid item ID")
	ErrEmptySite        = errors.New("site is required")
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrEmptyOldPassword = errors.New("old password is required")
	ErrEmptyNewPassword = errors.New("new password is required")
)
