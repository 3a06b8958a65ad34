package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/handler"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/ratelimit"
	"github.com/marketforge/marketsync/internal/service"
)

func TestNewServer(t *testing.T) {
	t.Run("fails without an HTTP address", func(t *testing.T) {
		srv, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

		assert.ErrorIs(t, err, errNoServersAreCreated)
		assert.Nil(t, srv)
	})

	t.Run("wires the handler router when configured", func(t *testing.T) {
		cfg := &config.StructuredConfig{}
		cfg.Server.HTTPAddress = "localhost:0"

		handlers, err := handler.NewHandlers(&service.Services{}, ratelimit.New(), cfg, logger.Nop())
		require.NoError(t, err)

		srv, err := NewServer(handlers, cfg.Server, logger.Nop())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}

func TestNewHTTPServerDefaults(t *testing.T) {
	s := newHTTPServer(nil, config.Server{HTTPAddress: "localhost:8080"}, logger.Nop())

	assert.Equal(t, "localhost:8080", s.server.Addr)
	assert.Equal(t, 60*time.Second, s.server.ReadTimeout)

	s = newHTTPServer(nil, config.Server{HTTPAddress: "localhost:8080", RequestTimeout: 5 * time.Second}, logger.Nop())
	assert.Equal(t, 5*time.Second, s.server.ReadTimeout)
}
