package service

import (
	"context"
	"fmt"

	"github.com/marketforge/marketsync/internal/logger"
)

// clientSyncService reconciles every collection of the session and replays
// offline queues when connectivity returns.
type clientSyncService struct {
	collections  []CollectionService
	connectivity *ConnectivityTracker
	logger       *logger.Logger

	cancelReconnect func()
}

// NewClientSyncService wires the sync coordinator to its collections and
// registers a reconnect listener: an offline-to-online transition replays
// every collection's queued operations in the background.
func NewClientSyncService(collections []CollectionService, connectivity *ConnectivityTracker, log *logger.Logger) ClientSyncService {
	s := &clientSyncService{
		collections:  collections,
		connectivity: connectivity,
		logger:       log,
	}

	s.cancelReconnect = connectivity.OnReconnect(func() {
		go s.replayAll(context.Background())
	})

	return s
}

// FullSync implements [ClientSyncService].
func (s *clientSyncService) FullSync(ctx context.Context) error {
	for _, collection := range s.collections {
		if err := collection.Reconcile(ctx); err != nil {
			return fmt.Errorf("full sync: %w", err)
		}
	}
	return nil
}

func (s *clientSyncService) replayAll(ctx context.Context) {
	for _, collection := range s.collections {
		if err := collection.Replay(ctx); err != nil {
			s.logger.Err(err).Str("func", "replayAll").Msg("queue replay halted")
			return
		}
	}
}
