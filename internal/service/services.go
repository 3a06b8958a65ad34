package service

import (
	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/store"
)

// Services bundles the server-side business layer handed to the HTTP
// handlers.
type Services struct {
	AuthService           AuthService
	CollectionSyncService CollectionSyncService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:           NewAuthService(storages.UserRepository, cfg.App, logger),
		CollectionSyncService: NewCollectionSyncService(storages.CollectionRepository, logger),
	}
}
