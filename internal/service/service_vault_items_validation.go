// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultItemValidationService checks request data before delegating to the
// wrapped VaultItemService.
type vaultItemValidationService struct {
	inner     VaultItemService
	validator validators.Validator
}

// NewVaultItemValidationService returns a wrapper that adds input validation
// to any VaultItemService.
func NewVaultItemValidationService() VaultItemServiceWrapper {
	return &vaultItemValidationService{validator: validators.NewVaultValidator()}
}

// Wrap returns a copy of the wrapper delegating to inner.
func (v *vaultItemValidationService) Wrap(inner VaultItemService) VaultItemService {
	return &vaultItemValidationService{inner: inner, validator: v.validator}
}

func (v *vaultItemValidationService) ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error) {
	if userID <= 0 {
		return nil, ErrValidationNoUserID
	}

	return v.inner.ListItems(ctx, userID)
}

func (v *vaultItemValidationService) CreateItem(ctx context.Context, userID int64, fields models.CipheredFields) (models.CipheredItem, error) {
	if userID <= 0 {
		return models.CipheredItem{}, ErrValidationNoUserID
	}
	if err := v.validateFields(ctx, fields); err != nil {
		return models.CipheredItem{}, err
	}

	return v.inner.CreateItem(ctx, userID, fields)
}

func (v *vaultItemValidationService) UpdateItem(ctx context.Context, id string, userID int64, fields models.CipheredFields) (models.CipheredItem, error) {
	if userID <= 0 {
		return models.CipheredItem{}, ErrValidationNoUserID
	}
	if id == "" {
		return models.CipheredItem{}, ErrValidationNoItemID
	}
	if err := v.validateFields(ctx, fields); err != nil {
		return models.CipheredItem{}, err
	}

	return v.inner.UpdateItem(ctx, id, userID, fields)
}

func (v *vaultItemValidationService) DeleteItem(ctx context.Context, id string, userID int64) error {
	if userID <= 0 {
		return ErrValidationNoUserID
	}
	if id == "" {
		return ErrValidationNoItemID
	}

	return v.inner.DeleteItem(ctx, id, userID)
}

func (v *vaultItemValidationService) validateFields(ctx context.Context, fields models.CipheredFields) error {
	err := v.validator.Validate(ctx, fields)
	if err == nil {
		return nil
	}

	if errors.Is(err, validators.ErrEmptySite) ||
		errors.Is(err, validators.ErrEmptyUsername) ||
		errors.Is(err, validators.ErrEmptyPassword) {
		return fmt.Errorf("%w: %w", ErrValidationMissingItemFields, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
