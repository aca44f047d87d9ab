// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the vault server.
//
// It exposes route wiring, request handlers, and middleware. Tracing, access
// logging, security headers, request integrity checks and bearer
// authentication run in this package before requests reach the service
// layer. Every error response has the {"error": "..."} body built from the
// messages in package app.
package http
