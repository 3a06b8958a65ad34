package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marketforge/marketsync/internal/adapter"
	"github.com/marketforge/marketsync/models"
)

// Reconcile implements [CollectionService]. It merges the authoritative
// server-side collection into local state:
//
//   - A resource present on both sides keeps its local entry identity and
//     cart quantity, but takes the server's payload — the server is
//     authoritative for denormalized display data such as current price.
//   - A resource present only locally survives the merge unchanged and is
//     pushed to the server afterwards.
//   - A resource present only on the server is appended verbatim.
//
// The merged set replaces local entries in one atomic update; no partially
// merged state is ever observable. A failed fetch aborts before any of that
// and leaves local state untouched. The offline queue is drained last, with
// the merged state as baseline.
func (s *collectionService) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()

	serverEntries, err := s.server.Fetch(ctx, s.collection)
	if err != nil {
		if errors.Is(err, adapter.ErrConnectivity) {
			s.connectivity.SetOnline(false)
		}
		s.mu.Lock()
		s.isLoading = false
		s.lastError = err.Error()
		s.mu.Unlock()
		return fmt.Errorf("reconcile fetch %s: %w", s.collection, err)
	}
	s.connectivity.SetOnline(true)

	serverByResource := make(map[string]models.ResourceEntry, len(serverEntries))
	for _, entry := range serverEntries {
		serverByResource[entry.ResourceID] = entry
	}

	s.mu.Lock()

	merged := make([]models.ResourceEntry, 0, len(s.entries)+len(serverEntries))
	mergedResources := make(map[string]bool, len(s.entries))
	var localOnly []models.ResourceEntry

	for _, local := range s.entries {
		if srv, ok := serverByResource[local.ResourceID]; ok {
			local.Payload = models.CopyPayload(srv.Payload)
		} else {
			localOnly = append(localOnly, local)
		}
		merged = append(merged, local)
		mergedResources[local.ResourceID] = true
	}

	for _, srv := range serverEntries {
		if mergedResources[srv.ResourceID] {
			continue
		}
		if srv.ID == "" {
			srv.ID = s.ids.Generate()
		}
		merged = append(merged, srv)
	}

	s.entries = merged
	s.isLoading = false
	s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	s.logger.Debug().
		Str("func", "Reconcile").
		Str("collection", s.collection.String()).
		Int("merged", len(merged)).
		Int("localOnly", len(localOnly)).
		Msg("reconciled collection")

	for _, entry := range localOnly {
		s.push(ctx, models.OpAdd, entry.ResourceID, entry.Payload, entry.Quantity)
	}

	return s.Replay(ctx)
}

// Replay implements [CollectionService]. Queued operations are replayed
// strictly in enqueue order, one at a time; the first failure halts the drain
// and leaves the remainder queued for the next trigger, so nothing is
// silently dropped.
func (s *collectionService) Replay(ctx context.Context) error {
	err := s.queue.drain(ctx, s.applyQueued)
	if err == nil {
		return nil
	}

	if errors.Is(err, adapter.ErrConnectivity) {
		s.connectivity.SetOnline(false)
	}

	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()

	return fmt.Errorf("replay %s queue: %w", s.collection, err)
}

func (s *collectionService) applyQueued(ctx context.Context, op models.QueuedOperation) error {
	switch op.Kind {
	case models.OpAdd, models.OpSetQuantity:
		return s.server.Push(ctx, s.collection, models.PushRequest{ResourceID: op.ResourceID, Payload: op.Payload, Quantity: op.Quantity})
	case models.OpRemove:
		return s.server.Remove(ctx, s.collection, op.ResourceID)
	case models.OpClear:
		return s.server.Clear(ctx, s.collection)
	default:
		return fmt.Errorf("unknown queued operation kind %q", op.Kind)
	}
}
