// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrBadRequest is returned for HTTP 400.
	ErrBadRequest = errors.New("bad request")
	// ErrInvalidCredentials is returned for HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned for HTTP 403.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for HTTP 409.
	ErrConflict = errors.New("conflict")
	// ErrInternalServerError is returned for HTTP 500.
	ErrInternalServerError = errors.New("internal server error")
	// ErrBadGateway is returned for HTTP 502.
	ErrBadGateway = errors.New("bad gateway")
	// ErrUnexpectedStatus is returned for any other non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")
)
