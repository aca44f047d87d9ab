// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the account id in the
// request context under [utils.UserIDCtxKey].
//
// Requests are rejected with 401 when the header is absent, malformed, or
// carries an expired or invalid token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userScope rejects requests whose {userID} path segment differs from the
// authenticated account. It must run after auth.
func (h *Handler) userScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		pathUserID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil || pathUserID <= 0 {
			log.Warn().Str("user_id", chi.URLParam(r, "userID")).Msg("invalid user id in path")
			utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
			return
		}

		tokenUserID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok || tokenUserID != pathUserID {
			log.Warn().
				Int64("token_user_id", tokenUserID).
				Int64("path_user_id", pathUserID).
				Msg("access to another user's vault")
			utils.WriteError(w, app.MsgAccessDenied, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
