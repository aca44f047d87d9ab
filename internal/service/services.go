// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

type Services struct {
	AuthService      AuthService
	VaultItemService VaultItemService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	items := NewVaultItemService(storages.VaultItemRepository, utils.NewUUIDGenerator(), logger)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg, logger),
		VaultItemService: NewVaultItemValidationService().Wrap(items),
		AppInfoService:   appInfo,
	}, nil
}
