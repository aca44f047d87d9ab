// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/models"
)

// OutcomeKind classifies a stored item after a decryption attempt.
type OutcomeKind int

const (
	// OutcomeDecrypted means all three fields verified under the key.
	OutcomeDecrypted OutcomeKind = iota
	// OutcomeLegacyPlaintext means no field verified. The stored strings are
	// treated as plaintext written before client-side encryption existed.
	OutcomeLegacyPlaintext
	// OutcomeCorrupt means some fields verified and some did not.
	OutcomeCorrupt
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDecrypted:
		return "decrypted"
	case OutcomeLegacyPlaintext:
		return "legacy_plaintext"
	case OutcomeCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Field names used in [DecryptionOutcome.FieldErrors].
const (
	FieldSite     = "site"
	FieldUsername = "username"
	FieldPassword = "password"
)

// DecryptionOutcome is the result of [ItemCodec.DecryptItem].
type DecryptionOutcome struct {
	Kind   OutcomeKind
	ItemID string

	// Item holds the plaintext for OutcomeDecrypted and the stored strings
	// verbatim for OutcomeLegacyPlaintext. It is empty for OutcomeCorrupt.
	Item models.VaultItem

	// FieldErrors is set for OutcomeCorrupt only, keyed by field name.
	FieldErrors map[string]error
}

// ItemCodec applies a [FieldCipher] to the three secret fields of a vault
// item. Item ids are never encrypted.
type ItemCodec struct {
	fields *FieldCipher
}

// NewItemCodec returns a codec over fields.
func NewItemCodec(fields *FieldCipher) *ItemCodec {
	return &ItemCodec{fields: fields}
}

// EncryptItem seals site, username and password independently.
func (c *ItemCodec) EncryptItem(key *EncryptionKey, item models.VaultItem) (models.CipheredFields, error) {
	site, err := c.fields.EncryptField(key, item.Site)
	if err != nil {
		return models.CipheredFields{}, fmt.Errorf("encrypt %s: %w", FieldSite, err)
	}
	username, err := c.fields.EncryptField(key, item.Username)
	if err != nil {
		return models.CipheredFields{}, fmt.Errorf("encrypt %s: %w", FieldUsername, err)
	}
	password, err := c.fields.EncryptField(key, item.Password)
	if err != nil {
		return models.CipheredFields{}, fmt.Errorf("encrypt %s: %w", FieldPassword, err)
	}

	return models.CipheredFields{Site: site, Username: username, Password: password}, nil
}

// DecryptItem classifies a stored item. Cipher failures are folded into the
// outcome; the only error returned is [ErrKeyDestroyed], since a dead key
// would otherwise make every item look like legacy plaintext.
func (c *ItemCodec) DecryptItem(key *EncryptionKey, stored models.CipheredItem) (DecryptionOutcome, error) {
	if !key.Alive() {
		return DecryptionOutcome{}, ErrKeyDestroyed
	}

	fields := [...]struct {
		name    string
		encoded models.CipheredField
		plain   string
		err     error
	}{
		{name: FieldSite, encoded: stored.Site},
		{name: FieldUsername, encoded: stored.Username},
		{name: FieldPassword, encoded: stored.Password},
	}

	failed := 0
	for i := range fields {
		fields[i].plain, fields[i].err = c.fields.DecryptField(key, fields[i].encoded)
		if errors.Is(fields[i].err, ErrKeyDestroyed) {
			return DecryptionOutcome{}, ErrKeyDestroyed
		}
		if fields[i].err != nil {
			failed++
		}
	}

	outcome := DecryptionOutcome{ItemID: stored.ID}
	switch failed {
	case 0:
		outcome.Kind = OutcomeDecrypted
		outcome.Item = models.VaultItem{
			ID:       stored.ID,
			Site:     fields[0].plain,
			Username: fields[1].plain,
			Password: fields[2].plain,
		}
	case len(fields):
		outcome.Kind = OutcomeLegacyPlaintext
		outcome.Item = models.VaultItem{
			ID:       stored.ID,
			Site:     string(stored.Site),
			Username: string(stored.Username),
			Password: string(stored.Password),
		}
	default:
		outcome.Kind = OutcomeCorrupt
		outcome.FieldErrors = make(map[string]error, failed)
		for _, f := range fields {
			if f.err != nil {
				outcome.FieldErrors[f.name] = f.err
			}
		}
	}

	return outcome, nil
}
