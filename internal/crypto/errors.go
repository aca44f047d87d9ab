// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrAuthenticationFailure is returned when a ciphertext does not verify
	// under the given key: wrong key, tampering, or a blob that was never
	// produced by this cipher.
	ErrAuthenticationFailure = errors.New("authentication failure")

	// ErrMalformedInput is returned when an encoded field is not valid base64
	// or is too short to hold a nonce and an authentication tag.
	ErrMalformedInput = errors.New("malformed encoded field")

	// ErrKeyDestroyed is returned when an operation is attempted with a key
	// whose material has already been wiped.
	ErrKeyDestroyed = errors.New("encryption key destroyed")

	// ErrRandomSource is returned when the nonce source fails.
	ErrRandomSource = errors.New("random source failure")
)
