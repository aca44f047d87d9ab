// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-vault/internal/client"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	memguard.CatchInterrupt()

	log := logger.NewClientLogger("go-pass-vault-client")
	if err := run(log); err != nil {
		log.Error().Err(err).Msg("client stopped with error")
		fmt.Fprintln(os.Stderr, err)
		memguard.SafeExit(1)
	}
	memguard.Purge()
}

func run(log *logger.Logger) error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	app, err := client.NewApp(cfg, buildInfo, log)
	if err != nil {
		return fmt.Errorf("init client app error: %w", err)
	}

	return app.Run(context.Background())
}
