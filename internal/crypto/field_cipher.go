// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	nonceSize = 12
	tagSize   = 16
)

// FieldCipher encrypts single string fields with AES-256-GCM.
//
// Encoded form: base64(nonce ‖ ciphertext ‖ tag) with the standard alphabet
// and padding. This layout is shared with the browser client and must not
// change.
type FieldCipher struct {
	random io.Reader
}

// NewFieldCipher returns a cipher drawing nonces from random.
// A nil reader means [crypto/rand.Reader].
func NewFieldCipher(random io.Reader) *FieldCipher {
	if random == nil {
		random = rand.Reader
	}
	return &FieldCipher{random: random}
}

// EncryptField seals plaintext under key with a fresh nonce.
func (f *FieldCipher) EncryptField(key *EncryptionKey, plaintext string) (models.CipheredField, error) {
	var encoded models.CipheredField

	err := key.use(func(k []byte) error {
		gcm, err := newGCM(k)
		if err != nil {
			return err
		}

		nonce := make([]byte, nonceSize, nonceSize+len(plaintext)+tagSize)
		if _, err = io.ReadFull(f.random, nonce); err != nil {
			return fmt.Errorf("%w: %w", ErrRandomSource, err)
		}

		blob := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
		encoded = models.CipheredField(base64.StdEncoding.EncodeToString(blob))
		return nil
	})
	if err != nil {
		return "", err
	}

	return encoded, nil
}

// DecryptField opens an encoded field. It returns [ErrMalformedInput] when
// the value cannot be a sealed field at all and [ErrAuthenticationFailure]
// when it does not verify under key.
func (f *FieldCipher) DecryptField(key *EncryptionKey, encoded models.CipheredField) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if len(blob) < nonceSize+tagSize {
		return "", fmt.Errorf("%w: %d bytes", ErrMalformedInput, len(blob))
	}

	var plaintext []byte
	err = key.use(func(k []byte) error {
		gcm, err := newGCM(k)
		if err != nil {
			return err
		}

		nonce, sealed := blob[:nonceSize], blob[nonceSize:]
		plaintext, err = gcm.Open(nil, nonce, sealed, nil)
		if err != nil {
			return ErrAuthenticationFailure
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
