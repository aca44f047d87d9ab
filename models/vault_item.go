// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VaultItem is the decrypted, in-memory form of a vault entry. It only ever
// exists on the client.
type VaultItem struct {
	// ID is empty until the storage service has persisted the item.
	ID       string `json:"id,omitempty"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}
