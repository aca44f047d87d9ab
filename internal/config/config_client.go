// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey is the HMAC key for the HashSHA256 request header. Must match
	// the server's APP_HASH_KEY; empty disables signing.
	HashKey string
	// Version is shown by the clients' version output.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the vault server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientVault holds settings of the client vault engine.
type ClientVault struct {
	// DecryptWorkers bounds the login decryption fan-out.
	DecryptWorkers int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Vault   ClientVault
}

// GetClientConfig builds and validates a client-specific config view from
// defaults, environment, command-line flags and the optional JSON file.
func GetClientConfig() (*ClientConfig, error) {
	return getClientConfig(os.Args[1:])
}

func getClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

// LoadClientConfig is like [GetClientConfig] but never touches command-line
// flags, so callers with their own flag parsing (cobra) can use it. A
// non-empty jsonPath takes precedence over the CONFIG variable.
func LoadClientConfig(jsonPath string) (*ClientConfig, error) {
	b := newConfigBuilder().
		withDefaults().
		withEnv()
	if jsonPath != "" {
		b = b.withJSONFile(jsonPath)
	} else {
		b = b.withJSON()
	}

	cfg, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Vault: ClientVault{DecryptWorkers: cfg.Vault.DecryptWorkers},
	}

	return clientCfg, clientCfg.validate()
}
