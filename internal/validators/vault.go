// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the server-assigned id of a vault item.
	FieldID = "id"

	// FieldUserID targets the owner identifier of a vault item.
	FieldUserID = "user_id"

	// FieldSite targets the ciphered site of an item.
	FieldSite = "site"

	// FieldUsername targets the account username of credentials or the
	// ciphered username of an item.
	FieldUsername = "username"

	// FieldPassword targets the master password of credentials or the
	// ciphered password of an item.
	FieldPassword = "password"

	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
)

// VaultValidator checks credentials and ciphered items for presence of their
// required fields.
type VaultValidator struct{}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.CipheredItem:
		return v.validateItem(value, fields...)
	case *models.CipheredItem:
		return v.validateItem(*value, fields...)

	case models.CipheredFields:
		return v.validateFields(value, fields...)
	case *models.CipheredFields:
		return v.validateFields(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if c.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateItem(item models.CipheredItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUserID, FieldSite, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if item.ID == "" {
				return ErrInvalidItemID
			}
		case FieldUserID:
			if item.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldSite, FieldUsername, FieldPassword:
			if err := v.validateFields(item.Fields(), f); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateFields(c models.CipheredFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSite, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldSite:
			if c.Site == "" {
				return ErrEmptySite
			}
		case FieldUsername:
			if c.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateChangePassword(r models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldOldPassword:
			if r.OldPassword == "" {
				return ErrEmptyOldPassword
			}
		case FieldNewPassword:
			if r.NewPassword == "" {
				return ErrEmptyNewPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
