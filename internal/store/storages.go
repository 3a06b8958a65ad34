package store

import (
	"context"
	"fmt"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
)

// Storages groups all server-side repositories into a single value passed
// to the service layer.
type Storages struct {
	// CollectionRepository persists synchronized collection entries.
	CollectionRepository CollectionRepository

	// UserRepository persists storefront accounts.
	UserRepository UserRepository
}

// NewStorages initialises the server storage layer: connects to PostgreSQL,
// applies pending migrations, and wires the repositories.
func NewStorages(cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		CollectionRepository: NewCollectionRepository(db, log),
		UserRepository:       NewUserRepository(db, log),
	}, nil
}
