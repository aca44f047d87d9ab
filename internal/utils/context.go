// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
)

// contextKey is an unexported type for context keys defined in this package,
// preventing collisions with keys defined elsewhere.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the authenticated account id (int64) set by the
	// auth middleware.
	UserIDCtxKey = contextKey("userID")

	// TraceIDCtxKey holds the request trace id (string).
	TraceIDCtxKey = contextKey("traceID")
)

// GetUserIDFromContext returns the authenticated account id stored in ctx.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
