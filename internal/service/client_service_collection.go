package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/marketforge/marketsync/internal/adapter"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/internal/utils"
	"github.com/marketforge/marketsync/models"
)

// collectionService is the concrete CollectionService. One instance owns one
// collection (cart or wishlist) within one execution context; instances for
// different collections are fully independent, including their offline
// queues.
type collectionService struct {
	collection   models.CollectionType
	kv           store.KeyValue
	server       adapter.ServerAdapter
	connectivity *ConnectivityTracker
	queue        *offlineQueue
	ids          *utils.UUIDGenerator
	logger       *logger.Logger

	mu        sync.Mutex
	entries   []models.ResourceEntry
	isLoading bool
	lastError string
	subs      map[int]func(entries []models.ResourceEntry)
	nextSub   int

	unsubscribe func()
}

// NewCollectionService constructs the replicated local store for one
// collection. It hydrates in-memory state from the backing store (falling
// back to an empty collection on a missing key, corrupt envelope, or unknown
// envelope version — never an error) and attaches to the backing store's
// change feed so writes by other execution contexts re-hydrate this one.
func NewCollectionService(collection models.CollectionType, kv store.KeyValue, server adapter.ServerAdapter, connectivity *ConnectivityTracker, log *logger.Logger) (CollectionService, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrValidationUnknownCollection, collection)
	}

	s := &collectionService{
		collection:   collection,
		kv:           kv,
		server:       server,
		connectivity: connectivity,
		queue:        newOfflineQueue(),
		ids:          utils.NewUUIDGenerator(),
		logger:       log,
		subs:         make(map[int]func(entries []models.ResourceEntry)),
	}

	s.hydrate()
	s.unsubscribe = kv.Subscribe(collection.StorageKey(), s.onRemoteChange)

	return s, nil
}

// hydrate loads the persisted envelope into memory. Every failure path ends
// in an empty collection: a store that cannot read its own state starts over
// rather than refusing to start.
func (s *collectionService) hydrate() {
	raw, err := s.kv.Get(s.collection.StorageKey())
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.Err(err).Str("func", "hydrate").Str("collection", s.collection.String()).Msg("backing store read failed, starting empty")
		}
		s.entries = []models.ResourceEntry{}
		return
	}

	entries, err := DecodeEnvelope(raw)
	if err != nil {
		s.logger.Err(err).Str("func", "hydrate").Str("collection", s.collection.String()).Msg("persisted envelope rejected, starting empty")
		s.entries = []models.ResourceEntry{}
		return
	}

	s.entries = entries
}

// Add implements [CollectionService].
func (s *collectionService) Add(ctx context.Context, resourceID string, payload json.RawMessage, quantity int) models.ResourceEntry {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	idx := s.indexOfLocked(resourceID)

	var entry models.ResourceEntry
	switch {
	case idx >= 0 && !s.collection.HasQuantity():
		// Idempotent wishlist add: nothing changed, nothing to persist
		// or push.
		entry = s.entries[idx]
		s.mu.Unlock()
		return entry

	case idx >= 0:
		s.entries[idx].Quantity += quantity
		entry = s.entries[idx]

	default:
		entry = models.ResourceEntry{
			ID:         s.ids.Generate(),
			ResourceID: resourceID,
			Payload:    models.CopyPayload(payload),
		}
		if s.collection.HasQuantity() {
			entry.Quantity = quantity
		}
		s.entries = append(s.entries, entry)
	}

	s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	s.push(ctx, models.OpAdd, entry.ResourceID, entry.Payload, entry.Quantity)

	return entry
}

// Remove implements [CollectionService].
func (s *collectionService) Remove(ctx context.Context, resourceID string) {
	s.mu.Lock()
	idx := s.indexOfLocked(resourceID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	s.push(ctx, models.OpRemove, resourceID, nil, 0)
}

// SetQuantity implements [CollectionService].
func (s *collectionService) SetQuantity(ctx context.Context, resourceID string, quantity int) {
	if !s.collection.HasQuantity() {
		return
	}
	if quantity <= 0 {
		s.Remove(ctx, resourceID)
		return
	}

	s.mu.Lock()
	idx := s.indexOfLocked(resourceID)
	if idx < 0 {
		// Setting a quantity never creates an entry.
		s.mu.Unlock()
		return
	}

	s.entries[idx].Quantity = quantity
	entry := s.entries[idx]
	s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	s.push(ctx, models.OpSetQuantity, entry.ResourceID, entry.Payload, entry.Quantity)
}

// Clear implements [CollectionService]. Queued operations are dropped before
// the server call: a clear supersedes every buffered intent, and replaying
// one after a successful server clear would resurrect entries.
func (s *collectionService) Clear(ctx context.Context) {
	s.queue.reset()

	s.mu.Lock()
	s.entries = []models.ResourceEntry{}
	s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	s.push(ctx, models.OpClear, "", nil, 0)
}

// Contains implements [CollectionService].
func (s *collectionService) Contains(resourceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfLocked(resourceID) >= 0
}

// Get implements [CollectionService].
func (s *collectionService) Get(resourceID string) (models.ResourceEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(resourceID)
	if idx < 0 {
		return models.ResourceEntry{}, false
	}

	entry := s.entries[idx]
	entry.Payload = models.CopyPayload(entry.Payload)
	return entry, true
}

// Entries implements [CollectionService].
func (s *collectionService) Entries() []models.ResourceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsLoading implements [CollectionService].
func (s *collectionService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// LastError implements [CollectionService].
func (s *collectionService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Subscribe implements [CollectionService].
func (s *collectionService) Subscribe(fn func(entries []models.ResourceEntry)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// PendingOperations implements [CollectionService].
func (s *collectionService) PendingOperations() []models.QueuedOperation {
	return s.queue.snapshot()
}

// Close implements [CollectionService].
func (s *collectionService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// indexOfLocked returns the position of resourceID in entries, or -1.
// Collections are small (a cart, a wishlist), so a linear scan beats keeping
// a parallel index consistent.
func (s *collectionService) indexOfLocked(resourceID string) int {
	for i := range s.entries {
		if s.entries[i].ResourceID == resourceID {
			return i
		}
	}
	return -1
}

// persistLocked writes the full current state as a replacement envelope. On
// success lastError is cleared; on failure it records the error and leaves
// the in-memory mutation in place — the UI stays consistent with user intent
// and the next successful mutation re-persists the complete state anyway.
func (s *collectionService) persistLocked() {
	raw, err := EncodeEnvelope(s.entries)
	if err == nil {
		err = s.kv.Set(s.collection.StorageKey(), raw)
	}
	if err != nil {
		s.logger.Err(err).Str("func", "persist").Str("collection", s.collection.String()).Msg("backing store write failed")
		s.lastError = err.Error()
		return
	}

	s.lastError = ""
}

func (s *collectionService) snapshotLocked() []models.ResourceEntry {
	out := make([]models.ResourceEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *collectionService) notify(entries []models.ResourceEntry) {
	s.mu.Lock()
	fns := make([]func(entries []models.ResourceEntry), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(entries)
	}
}

// push sends one mutation to the server. A connectivity-class failure buffers
// the intent in the offline queue and flips the tracker offline; a validation
// failure is surfaced through lastError and never retried — the optimistic
// local mutation intentionally stays in place either way.
func (s *collectionService) push(ctx context.Context, kind models.OperationKind, resourceID string, payload json.RawMessage, quantity int) {
	var err error
	switch kind {
	case models.OpAdd, models.OpSetQuantity:
		err = s.server.Push(ctx, s.collection, models.PushRequest{ResourceID: resourceID, Payload: payload, Quantity: quantity})
	case models.OpRemove:
		err = s.server.Remove(ctx, s.collection, resourceID)
	case models.OpClear:
		err = s.server.Clear(ctx, s.collection)
	}

	if err == nil {
		s.connectivity.SetOnline(true)
		return
	}

	if errors.Is(err, adapter.ErrConnectivity) {
		s.queue.enqueue(kind, resourceID, payload, quantity)
		s.connectivity.SetOnline(false)
	}

	s.logger.Err(err).Str("func", "push").Str("collection", s.collection.String()).Str("resourceID", resourceID).Msg("server push failed")

	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

// onRemoteChange re-hydrates this context's state after another execution
// context wrote under the collection's key. A value that fails to decode is
// ignored rather than allowed to corrupt current state.
func (s *collectionService) onRemoteChange(value string) {
	entries, err := DecodeEnvelope(value)
	if err != nil {
		s.logger.Err(err).Str("func", "onRemoteChange").Str("collection", s.collection.String()).Msg("ignoring undecodable cross-context write")
		return
	}

	s.mu.Lock()
	s.entries = entries
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}
