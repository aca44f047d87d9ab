// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials is the body of signup and login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login: the account and its stored
// items, newest first. The bearer token travels in the Authorization header.
type AuthResponse struct {
	User  User           `json:"user"`
	Items []CipheredItem `json:"items"`
}

// ItemRequest is the body of item create and update requests. UserID must
// match the subject of the bearer token.
type ItemRequest struct {
	UserID int64 `json:"userId"`
	CipheredFields
}

// ItemResponse wraps a single stored item.
type ItemResponse struct {
	Item CipheredItem `json:"item"`
}

// ItemsResponse wraps a list of stored items, newest first.
type ItemsResponse struct {
	Items []CipheredItem `json:"items"`
}

// ChangePasswordRequest is the body of the account password change request.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
