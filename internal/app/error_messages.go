// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// go-pass-vault server handlers and by the client when it interprets error
// bodies returned by the server.
//
// All Msg* constants are human-readable message strings that are written into
// the {"error": "..."} body of HTTP responses.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgMissingCredentials is returned by signup and login when the
	// username or password is empty.
	MsgMissingCredentials = "username and password are required"

	// MsgMissingItemFields is returned when a vault item arrives without one
	// of its three ciphered fields.
	MsgMissingItemFields = "site, username and password are required"

	// MsgInvalidLoginPassword is returned when the supplied username/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid username/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// missing, expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when the {userID} path parameter is
	// not a positive integer.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgAccessDenied is returned when the authenticated user addresses a
	// resource that belongs to a different user.
	MsgAccessDenied = "access denied"

	// MsgRegistrationFailed is returned when account creation fails for a
	// reason other than a taken username.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler cannot issue a token.
	MsgLoginFailed = "login failed"

	// MsgUsernameAlreadyExists is returned when signup is rejected because
	// the username is already in use.
	MsgUsernameAlreadyExists = "username already exists"

	// MsgItemNotFound is returned when an update or delete targets a vault
	// item that does not exist for the current user.
	MsgItemNotFound = "item not found"

	MsgRequestHashMismatch = "request hash mismatch"

	// MsgStorageUnavailable is returned with 503 when the database reports a
	// transient failure. The request can be retried.
	MsgStorageUnavailable = "storage temporarily unavailable"
)
