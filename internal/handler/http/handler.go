// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// Handler serves the REST API on top of the server services.
type Handler struct {
	services *service.Services

	// hasher verifies the HashSHA256 header. Nil disables the check.
	hasher *utils.Hasher

	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler builds a Handler. A non-empty cfg.App.HashKey enables request
// body integrity checks.
func NewHandler(services *service.Services, cfg config.ServerConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
	if cfg.App.HashKey != "" {
		h.hasher = utils.NewHasher(cfg.App.HashKey)
	}

	logger.Info().Bool("integrity_check", h.hasher != nil).Msg("http handler created")
	return h
}
