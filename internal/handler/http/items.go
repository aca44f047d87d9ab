// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	items, err := h.services.VaultItemService.ListItems(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, "listing items failed")
		return
	}

	utils.WriteJSON(w, models.ItemsResponse{Items: items}, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	fields, ok := decodeItemRequest(w, r, userID)
	if !ok {
		return
	}

	item, err := h.services.VaultItemService.CreateItem(ctx, userID, fields)
	if err != nil {
		writeServiceError(w, r, err, "item creation failed")
		return
	}

	logger.FromRequest(r).Debug().Str("item_id", item.ID).Msg("item created")
	utils.WriteJSON(w, models.ItemResponse{Item: item}, http.StatusCreated)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	itemID := chi.URLParam(r, "itemID")

	fields, ok := decodeItemRequest(w, r, userID)
	if !ok {
		return
	}

	item, err := h.services.VaultItemService.UpdateItem(ctx, itemID, userID, fields)
	if err != nil {
		writeServiceError(w, r, err, "item update failed")
		return
	}

	utils.WriteJSON(w, models.ItemResponse{Item: item}, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	if err := h.services.VaultItemService.DeleteItem(ctx, chi.URLParam(r, "itemID"), userID); err != nil {
		writeServiceError(w, r, err, "item deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeItemRequest reads an item body. A userId in the body must name the
// authenticated user; zero is accepted and means the path user.
func decodeItemRequest(w http.ResponseWriter, r *http.Request, userID int64) (models.CipheredFields, bool) {
	log := logger.FromRequest(r)

	var req models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.CipheredFields{}, false
	}

	if req.UserID != 0 && req.UserID != userID {
		log.Warn().Int64("user_id", userID).Int64("body_user_id", req.UserID).Msg("item body names another user")
		utils.WriteError(w, app.MsgAccessDenied, http.StatusForbidden)
		return models.CipheredFields{}, false
	}

	return req.CipheredFields, true
}
