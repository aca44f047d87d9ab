// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the interactive vault client: the HTTP adapter,
// the vault session and the terminal UI.
package client
