// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pass-vault/models"
)

func validItem() models.CipheredItem {
	return models.CipheredItem{ID: "id-1", UserID: 1, Site: "c2l0ZQ==", Username: "dXNlcg==", Password: "cGFzcw=="}
}

func TestVaultValidator_Credentials(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	tests := []struct {
		name  string
		creds models.Credentials
		want  error
	}{
		{name: "valid", creds: models.Credentials{Username: "alice", Password: "pw"}},
		{name: "empty username", creds: models.Credentials{Password: "pw"}, want: ErrEmptyUsername},
		{name: "empty password", creds: models.Credentials{Username: "alice"}, want: ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.creds)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			// pointer form behaves the same
			assert.Equal(t, err, v.Validate(ctx, &tt.creds))
		})
	}
}

func TestVaultValidator_Item(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CipheredItem)
		fields []string
		want   error
	}{
		{name: "valid", mutate: func(*models.CipheredItem) {}},
		{name: "no id", mutate: func(i *models.CipheredItem) { i.ID = "" }, want: ErrInvalidItemID},
		{name: "no owner", mutate: func(i *models.CipheredItem) { i.UserID = 0 }, want: ErrInvalidUserID},
		{name: "no site", mutate: func(i *models.CipheredItem) { i.Site = "" }, want: ErrEmptySite},
		{name: "no username", mutate: func(i *models.CipheredItem) { i.Username = "" }, want: ErrEmptyUsername},
		{name: "no password", mutate: func(i *models.CipheredItem) { i.Password = "" }, want: ErrEmptyPassword},
		{name: "scoped to fields", mutate: func(i *models.CipheredItem) { i.ID = "" }, fields: []string{FieldSite, FieldUserID}},
		{name: "unknown field", mutate: func(*models.CipheredItem) {}, fields: []string{"notes"}, want: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)

			err := v.Validate(ctx, item, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVaultValidator_Fields(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, validItem().Fields()))
	assert.ErrorIs(t, v.Validate(ctx, models.CipheredFields{Site: "a", Username: "b"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, &models.CipheredFields{}), ErrEmptySite)
}

func TestVaultValidator_ChangePassword(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ChangePasswordRequest{NewPassword: "b"}), ErrEmptyOldPassword)
	assert.ErrorIs(t, v.Validate(ctx, &models.ChangePasswordRequest{OldPassword: "a"}), ErrEmptyNewPassword)
}

func TestVaultValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewVaultValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
