package http

import (
	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/ratelimit"
	"github.com/marketforge/marketsync/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  *ratelimit.Limiter
	rate     config.RateLimit
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *ratelimit.Limiter, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		rate:     cfg.Server.RateLimit,
		version:  cfg.App.Version,
		logger:   logger,
	}
}
