// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-pass-vault/internal/logger"

// Storages groups the server repositories sharing one database.
type Storages struct {
	UserRepository      UserRepository
	VaultItemRepository VaultItemRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:      NewUserRepository(db, log),
		VaultItemRepository: NewVaultItemRepository(db, log),
	}
}
