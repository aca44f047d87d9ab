// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cmd holds the vaultctl commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

const (
	envUser         = "VAULT_USER"
	envPassword     = "VAULT_PASSWORD"
	envNewPassword  = "VAULT_NEW_PASSWORD"
	envItemPassword = "VAULT_ITEM_PASSWORD"
)

// OpenFunc returns a new logged out vault session.
type OpenFunc func(configPath string) (service.ClientVaultService, error)

type cliApp struct {
	open       OpenFunc
	configPath string
	username   string
}

// NewRootCmd builds the vaultctl command tree on top of open.
func NewRootCmd(open OpenFunc, version string) *cobra.Command {
	app := &cliApp{open: open}

	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "vaultctl is a scriptable client of the password vault",
		Long: `vaultctl manages a zero-knowledge password vault from scripts.

Every command logs in, runs and logs out. The master password is taken from
VAULT_PASSWORD or from the first line of standard input.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "path to a JSON config file")
	root.PersistentFlags().StringVarP(&app.username, "user", "u", os.Getenv(envUser), "account username (env "+envUser+")")

	root.AddCommand(
		newSignupCmd(app),
		newListCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newRmCmd(app),
		newPasswdCmd(app),
	)

	return root
}

// Execute runs vaultctl with the process arguments and exits non-zero on
// failure.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(openSession, version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		memguard.SafeExit(1)
	}
	memguard.Purge()
}

func openSession(configPath string) (service.ClientVaultService, error) {
	cfg, err := config.LoadClientConfig(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.NewClientLogger("vaultctl")
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	return service.NewClientServices(serverAdapter, cfg.Vault, log).VaultService, nil
}
