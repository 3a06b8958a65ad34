package handler

import (
	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/handler/http"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/ratelimit"
	"github.com/marketforge/marketsync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, limiter *ratelimit.Limiter, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, limiter, cfg, logger),
	}, nil
}
