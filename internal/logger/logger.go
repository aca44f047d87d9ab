// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used by the vault
// server and clients.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Vault code logs item ids and counts only; plaintext, master passwords and
// keys never reach a logger.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New builds a JSON logger writing to w. Every entry carries the role, a
// timestamp and the fully-qualified name of the calling function in "func".
func New(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewLogger returns a logger writing to os.Stdout. Used by the server.
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// NewClientLogger returns a logger for terminal clients. Writing to stdout
// would corrupt the TUI, so output goes to [ClientLogPath]; when the file
// cannot be opened the logger discards everything.
func NewClientLogger(role string) *Logger {
	var w io.Writer = io.Discard

	if path, err := ClientLogPath(); err == nil {
		if err = os.MkdirAll(filepath.Dir(path), 0o700); err == nil {
			if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
				w = f
			}
		}
	}

	return New(w, role)
}

// ClientLogPath returns the client log file location: VAULT_LOG_FILE when
// set, otherwise go-pass-vault/client.log under the user cache directory.
func ClientLogPath() (string, error) {
	if p := os.Getenv("VAULT_LOG_FILE"); p != "" {
		return p, nil
	}

	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "go-pass-vault", "client.log"), nil
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child can be enriched without affecting the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request's context by the
// trace middleware, or zerolog's default logger.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
