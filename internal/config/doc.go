// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the vault server and its clients.
//
// Configuration is assembled from several sources, later sources overriding
// earlier non-zero fields:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Entry points are [GetServerConfig] for cmd/server, [GetClientConfig] for
// the TUI client and [LoadClientConfig] for tools that own their flags.
package config
