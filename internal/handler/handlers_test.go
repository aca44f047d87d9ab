package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.ServerConfig{Server: config.Server{HTTPAddress: ":8080"}}

	handlers, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, handlers.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	handlers, err := NewHandlers(&service.Services{}, config.ServerConfig{}, logger.Nop())

	assert.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, handlers)
}
