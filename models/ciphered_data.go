// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CipheredField is one independently encrypted vault field:
// base64(nonce ‖ ciphertext ‖ tag). Records written before client-side
// encryption existed hold the raw plaintext here instead; the server cannot
// tell the two apart and does not try to.
type CipheredField string

// CipheredFields is the encrypted triple sent to the storage service on
// create and update. It carries no id: ids are assigned by the server.
type CipheredFields struct {
	Site     CipheredField `json:"site"`
	Username CipheredField `json:"username"`
	Password CipheredField `json:"password"`
}

// CipheredItem is the wire and storage representation of a vault item.
type CipheredItem struct {
	// ID is the server-assigned identifier of the item.
	ID string `json:"id"`

	// UserID is the owner of the item.
	UserID int64 `json:"userId"`

	Site     CipheredField `json:"site"`
	Username CipheredField `json:"username"`
	Password CipheredField `json:"password"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields returns the encrypted triple of the item without its identity.
func (c CipheredItem) Fields() CipheredFields {
	return CipheredFields{Site: c.Site, Username: c.Username, Password: c.Password}
}

// TableName returns the name of the database table
// associated with the CipheredItem model.
func (c CipheredItem) TableName() string {
	return "vault_items"
}
