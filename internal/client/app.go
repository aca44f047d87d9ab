// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/tui"
	"github.com/MKhiriev/go-pass-vault/models"
)

var _ Client = (*App)(nil)

// App is the terminal client process.
type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	logger   *logger.Logger
}

// NewApp builds the client from its configuration.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	services := service.NewClientServices(serverAdapter, cfg.Vault, log)

	return &App{
		services: services,
		ui:       tui.New(services.VaultService, buildInfo, log),
		logger:   log,
	}, nil
}

// Run blocks until the user quits. The session is logged out on return.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("client started")
	defer a.logger.Info().Msg("client stopped")

	return a.ui.Run(ctx)
}
