package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "release tag", version: "v1.4.0"},
		{name: "prerelease with build metadata", version: "v1.5.0-rc.1+9f2c1ab"},
		{name: "binary built without ldflags", version: "N/A"},
		{name: "missing", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
		})
	}
}

// The health endpoint keeps answering while a request is being torn down.
func TestAppInfoService_VersionIgnoresCancelledContext(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "v1.4.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "v1.4.0", svc.GetAppVersion(ctx))
}

func TestNewServices_RequiresVersion(t *testing.T) {
	_, err := NewServices(&store.Storages{}, config.App{}, logger.Nop())

	require.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestNewServices_WiresAppInfo(t *testing.T) {
	services, err := NewServices(&store.Storages{}, config.App{Version: "v1.4.0"}, logger.Nop())
	require.NoError(t, err)

	require.NotNil(t, services.AuthService)
	require.NotNil(t, services.VaultItemService)
	assert.Equal(t, "v1.4.0", services.AppInfoService.GetAppVersion(context.Background()))
}
