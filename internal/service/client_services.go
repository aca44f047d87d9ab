// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	VaultService ClientVaultService
}

// NewClientServices wires a vault session with production key derivation
// and the operating system's random source.
func NewClientServices(serverAdapter adapter.ServerAdapter, cfg config.ClientVault, log *logger.Logger) *ClientServices {
	codec := crypto.NewItemCodec(crypto.NewFieldCipher(nil))

	return &ClientServices{
		VaultService: NewVaultSession(serverAdapter, crypto.NewKeyDeriver(), codec, cfg.DecryptWorkers, log),
	}
}
