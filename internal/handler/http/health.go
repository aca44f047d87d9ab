// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{Status: "ok"}
	if h.services.AppInfoService != nil {
		response.Version = h.services.AppInfoService.GetAppVersion(r.Context())
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
