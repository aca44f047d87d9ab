// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the client-side vault cryptography: password based key
// derivation, per-field authenticated encryption and classification of stored
// items. Nothing in here knows about the network, the database or sessions.
package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor used by every client that
	// ever wrote to a vault. Changing it makes existing vaults unreadable.
	DefaultIterations = 600_000

	// KeySize is the length of the derived AES-256 key in bytes.
	KeySize = 32
)

// EncryptionKey is a derived vault key. The material lives in a memguard
// enclave and is only decrypted into locked memory for the duration of a
// single cipher operation.
type EncryptionKey struct {
	enclave *memguard.Enclave
}

// Destroy drops the key material. Any later use fails with [ErrKeyDestroyed].
// It is safe to call Destroy more than once and on a nil key.
func (k *EncryptionKey) Destroy() {
	if k == nil {
		return
	}
	k.enclave = nil
}

// Alive reports whether the key can still be used.
func (k *EncryptionKey) Alive() bool {
	return k != nil && k.enclave != nil
}

// String never reveals key material.
func (k *EncryptionKey) String() string {
	return "[REDACTED]"
}

// GoString never reveals key material.
func (k *EncryptionKey) GoString() string {
	return "crypto.EncryptionKey{[REDACTED]}"
}

// use opens the enclave into a locked buffer, hands the bytes to fn and wipes
// the buffer afterwards.
func (k *EncryptionKey) use(fn func(key []byte) error) error {
	if !k.Alive() {
		return ErrKeyDestroyed
	}

	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("opening key enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// KeyDeriver turns a master password and a username into an [EncryptionKey]
// with PBKDF2-HMAC-SHA256. The username bytes are the salt, so the same pair
// always yields the same key on every device.
type KeyDeriver struct {
	iterations int
}

// KeyDeriverOption configures a [KeyDeriver].
type KeyDeriverOption func(*KeyDeriver)

// WithIterations overrides the PBKDF2 work factor. Only useful in tests and
// benchmarks: keys derived with a different count do not open real vaults.
func WithIterations(n int) KeyDeriverOption {
	return func(d *KeyDeriver) {
		if n > 0 {
			d.iterations = n
		}
	}
}

// NewKeyDeriver returns a deriver using [DefaultIterations].
func NewKeyDeriver(opts ...KeyDeriverOption) *KeyDeriver {
	d := &KeyDeriver{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Derive returns the vault key for the given credentials. Inputs are used as
// raw UTF-8 without normalization; empty strings are accepted.
func (d *KeyDeriver) Derive(password, username string) *EncryptionKey {
	raw := pbkdf2.Key([]byte(password), []byte(username), d.iterations, KeySize, sha256.New)

	// NewEnclave wipes raw.
	return &EncryptionKey{enclave: memguard.NewEnclave(raw)}
}
