// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a new user cannot be created
	// because the username is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("no user was found")

	// ErrItemNotFound is returned when a query or update targets a vault item
	// (identified by id and user_id) that does not exist.
	ErrItemNotFound = errors.New("vault item was not found")

	// ErrUnsupportedDriver is returned by [NewConnect] for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrStorageUnavailable wraps driver errors classified as [Retryable]:
	// lost connections, deadlocks and busy databases.
	ErrStorageUnavailable = errors.New("storage is temporarily unavailable")
)

// Low-level database operation errors. These wrap the driver error when a SQL
// operation fails before any domain logic can be applied.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to execute statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
)
