// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// signup creates an account and answers 201 with the account, an empty item
// list and a bearer token in the Authorization header.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Signup(ctx, credentials)
	if err != nil {
		writeServiceError(w, r, err, "signup failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("creation of token failed")
		utils.WriteError(w, app.MsgRegistrationFailed, http.StatusInternalServerError)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed up")

	setBearer(w, token)
	utils.WriteJSON(w, models.AuthResponse{User: user, Items: []models.CipheredItem{}}, http.StatusCreated)
}

// login verifies credentials and answers with the account, its stored items
// newest first and a bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeServiceError(w, r, err, "login failed")
		return
	}

	items, err := h.services.VaultItemService.ListItems(ctx, user.UserID)
	if err != nil {
		writeServiceError(w, r, err, "listing items at login failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("creation of token failed")
		utils.WriteError(w, app.MsgLoginFailed, http.StatusInternalServerError)
		return
	}

	log.Info().Int64("user_id", user.UserID).Int("items", len(items)).Msg("user logged in")

	setBearer(w, token)
	utils.WriteJSON(w, models.AuthResponse{User: user, Items: items}, http.StatusOK)
}

// changePassword replaces the account password of the path user. Items are
// re-encrypted by the client beforehand; the server only swaps the hash.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if err := h.services.AuthService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err, "password change failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func setBearer(w http.ResponseWriter, token models.Token) {
	w.Header().Set("Authorization", "Bearer "+token.SignedString)
}
