// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	signupPath          = "/api/auth/signup"
	loginPath           = "/api/auth/login"
	itemsPath           = "/api/users/{userID}/passwords"
	itemPath            = "/api/users/{userID}/passwords/{itemID}"
	accountPasswordPath = "/api/users/{userID}/password"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises the base URL from adapterCfg.HTTPAddress
// and, when appCfg.HashKey is set, signs every request body with the
// HashSHA256 header.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	h := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: log,
	}
	if appCfg.HashKey != "" {
		h.hasher = utils.NewHasher(appCfg.HashKey)
	}

	h.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		h.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("server response")
		return nil
	})

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. POST /api/auth/signup.
func (h *httpServerAdapter) Register(ctx context.Context, username, password string) (models.User, error) {
	user, _, err := h.authenticate(ctx, signupPath, username, password)
	if err != nil {
		return models.User{}, fmt.Errorf("signup: %w", err)
	}
	return user, nil
}

// Authenticate implements [ServerAdapter]. POST /api/auth/login.
func (h *httpServerAdapter) Authenticate(ctx context.Context, username, password string) (models.User, []models.CipheredItem, error) {
	user, items, err := h.authenticate(ctx, loginPath, username, password)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("login: %w", err)
	}
	return user, items, nil
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path, username, password string) (models.User, []models.CipheredItem, error) {
	var result models.AuthResponse

	req, err := h.jsonRequest(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return models.User{}, nil, err
	}

	resp, err := req.SetResult(&result).Post(path)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, nil, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, nil, fmt.Errorf("parse bearer token: %w", err)
	}

	h.SetToken(token)
	return result.User, result.Items, nil
}

// ListItems implements [ServerAdapter]. GET /api/users/{userID}/passwords.
func (h *httpServerAdapter) ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error) {
	var result models.ItemsResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("userID", strconv.FormatInt(userID, 10)).
		SetResult(&result).
		Get(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return result.Items, nil
}

// CreateItem implements [ServerAdapter]. POST /api/users/{userID}/passwords.
func (h *httpServerAdapter) CreateItem(ctx context.Context, userID int64, fields models.CipheredFields) (string, error) {
	var result models.ItemResponse

	req, err := h.jsonRequest(ctx, models.ItemRequest{UserID: userID, CipheredFields: fields})
	if err != nil {
		return "", err
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(userID, 10)).
		SetResult(&result).
		Post(itemsPath)
	if err != nil {
		return "", fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if result.Item.ID == "" {
		return "", fmt.Errorf("create item: server returned no id")
	}

	return result.Item.ID, nil
}

// UpdateItem implements [ServerAdapter]. PUT /api/users/{userID}/passwords/{itemID}.
func (h *httpServerAdapter) UpdateItem(ctx context.Context, id string, userID int64, fields models.CipheredFields) error {
	req, err := h.jsonRequest(ctx, models.ItemRequest{UserID: userID, CipheredFields: fields})
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParams(map[string]string{
			"userID": strconv.FormatInt(userID, 10),
			"itemID": id,
		}).
		Put(itemPath)
	if err != nil {
		return fmt.Errorf("update item request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteItem implements [ServerAdapter]. DELETE /api/users/{userID}/passwords/{itemID}.
func (h *httpServerAdapter) DeleteItem(ctx context.Context, id string, userID int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{
			"userID": strconv.FormatInt(userID, 10),
			"itemID": id,
		}).
		Delete(itemPath)
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

// ChangeAccountPassword implements [ServerAdapter]. PUT /api/users/{userID}/password.
func (h *httpServerAdapter) ChangeAccountPassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	req, err := h.jsonRequest(ctx, models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(userID, 10)).
		Put(accountPasswordPath)
	if err != nil {
		return fmt.Errorf("change account password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// jsonRequest marshals body once so the integrity header covers exactly the
// bytes that are sent.
func (h *httpServerAdapter) jsonRequest(ctx context.Context, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if h.hasher != nil {
		req.SetHeader(utils.HashHeader, h.hasher.SumHex(payload))
	}

	return req, nil
}
