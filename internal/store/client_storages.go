package store

import (
	"fmt"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
)

// ClientStorages groups the client-side storage surface into a single value
// that can be passed around the service layer. The key-value store is the
// only shared mutable resource between execution contexts; everything else
// the client holds lives in memory.
type ClientStorages struct {
	// KV is the durable backing store for persisted collection envelopes.
	KV KeyValue

	// sqlite retains the concrete handle so the change-feed poller can be
	// started and the database closed on shutdown.
	sqlite *SQLiteKeyValue
}

// NewClientStorages initialises the client storage layer: it opens the
// SQLite-backed key-value store at the configured path (creating the file if
// it does not yet exist) and wraps it in a [ClientStorages] value.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	kv, err := NewSQLiteKeyValue(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite key-value store: %w", err)
	}

	return &ClientStorages{KV: kv, sqlite: kv}, nil
}

// ChangeFeed returns the poller that must run in the background for
// cross-process change notifications, or nil for purely in-memory setups.
func (c *ClientStorages) ChangeFeed() *SQLiteKeyValue {
	return c.sqlite
}

// Close releases storage resources.
func (c *ClientStorages) Close() error {
	if c.sqlite == nil {
		return nil
	}
	return c.sqlite.Close()
}
