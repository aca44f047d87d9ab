// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the vault server transports.
//
// It owns startup, signal handling, and graceful shutdown of every enabled
// transport.
package server
