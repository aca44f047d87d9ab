// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []errorResponse{
	{service.ErrValidationMissingCredentials, http.StatusBadRequest, app.MsgMissingCredentials},
	{service.ErrValidationMissingItemFields, http.StatusBadRequest, app.MsgMissingItemFields},
	{service.ErrValidationNoUserID, http.StatusBadRequest, app.MsgNoUserIDProvided},
	{service.ErrValidationNoItemID, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrAccessDenied, http.StatusForbidden, app.MsgAccessDenied},
	{service.ErrItemNotFound, http.StatusNotFound, app.MsgItemNotFound},
	{service.ErrUsernameTaken, http.StatusConflict, app.MsgUsernameAlreadyExists},
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
}

func statusFromError(err error) (int, string) {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeServiceError logs err and writes the matching status and message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	utils.WriteError(w, message, status)
}
