// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with every route and middleware of the API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withSecurityHeaders)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/health", h.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withIntegrityCheck)
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
	})

	router.Route("/api/users/{userID}", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.userScope)
		r.Use(h.withIntegrityCheck)

		r.Get("/passwords", h.listItems)
		r.Post("/passwords", h.createItem)
		r.Put("/passwords/{itemID}", h.updateItem)
		r.Delete("/passwords/{itemID}", h.deleteItem)

		r.Put("/password", h.changePassword)
	})

	return router
}
