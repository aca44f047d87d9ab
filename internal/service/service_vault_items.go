// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultItemService stores ciphered items on behalf of their owners. It never
// sees plaintext: every field is an opaque string produced by the client.
type vaultItemService struct {
	repo        store.VaultItemRepository
	idGenerator IDGenerator
	logger      *logger.Logger
}

// NewVaultItemService returns a VaultItemService backed by repo. New item ids
// are produced by idGenerator.
func NewVaultItemService(repo store.VaultItemRepository, idGenerator IDGenerator, logger *logger.Logger) VaultItemService {
	return &vaultItemService{
		repo:        repo,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

// ListItems returns every item owned by userID, newest first.
func (v *vaultItemService) ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error) {
	items, err := v.repo.ListItems(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("listing items failed")
		return nil, fmt.Errorf("listing items failed: %w", err)
	}

	if items == nil {
		items = []models.CipheredItem{}
	}
	return items, nil
}

// CreateItem stores fields as a new item of userID under a fresh id.
func (v *vaultItemService) CreateItem(ctx context.Context, userID int64, fields models.CipheredFields) (models.CipheredItem, error) {
	item := models.CipheredItem{
		ID:       v.idGenerator.Generate(),
		UserID:   userID,
		Site:     fields.Site,
		Username: fields.Username,
		Password: fields.Password,
	}

	created, err := v.repo.CreateItem(ctx, item)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("item creation failed")
		return models.CipheredItem{}, fmt.Errorf("item creation failed: %w", err)
	}

	return created, nil
}

// UpdateItem replaces all three fields of item id. Items of other users are
// reported as ErrItemNotFound.
func (v *vaultItemService) UpdateItem(ctx context.Context, id string, userID int64, fields models.CipheredFields) (models.CipheredItem, error) {
	item := models.CipheredItem{
		ID:       id,
		UserID:   userID,
		Site:     fields.Site,
		Username: fields.Username,
		Password: fields.Password,
	}

	updated, err := v.repo.UpdateItem(ctx, item)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.CipheredItem{}, ErrItemNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("item_id", id).Msg("item update failed")
		return models.CipheredItem{}, fmt.Errorf("item update failed: %w", err)
	}

	return updated, nil
}

// DeleteItem removes item id of userID.
func (v *vaultItemService) DeleteItem(ctx context.Context, id string, userID int64) error {
	err := v.repo.DeleteItem(ctx, id, userID)
	if errors.Is(err, store.ErrItemNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("item_id", id).Msg("item deletion failed")
		return fmt.Errorf("item deletion failed: %w", err)
	}

	return nil
}
