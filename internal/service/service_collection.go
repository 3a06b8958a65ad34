package service

import (
	"context"
	"fmt"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/internal/utils"
	"github.com/marketforge/marketsync/models"
)

// collectionSyncService is the concrete CollectionSyncService over the
// relational repository. It owns request validation; the repository below it
// only persists.
type collectionSyncService struct {
	collectionRepository store.CollectionRepository
	ids                  *utils.UUIDGenerator

	logger *logger.Logger
}

func NewCollectionSyncService(collectionRepository store.CollectionRepository, logger *logger.Logger) CollectionSyncService {
	return &collectionSyncService{
		collectionRepository: collectionRepository,
		ids:                  utils.NewUUIDGenerator(),
		logger:               logger,
	}
}

// List implements [CollectionSyncService].
func (c *collectionSyncService) List(ctx context.Context, userID int64, collection models.CollectionType) ([]models.ResourceEntry, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrValidationUnknownCollection, collection)
	}

	entries, err := c.collectionRepository.List(ctx, userID, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	return entries, nil
}

// Upsert implements [CollectionSyncService]. A cart push with zero quantity
// is a removal signal, not a stored state; wishlist pushes never carry a
// quantity.
func (c *collectionSyncService) Upsert(ctx context.Context, userID int64, collection models.CollectionType, req models.PushRequest) error {
	log := logger.FromContext(ctx)

	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrValidationUnknownCollection, collection)
	}
	if req.ResourceID == "" {
		return ErrValidationNoResourceID
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: %d", ErrValidationNegativeQuantity, req.Quantity)
	}

	if collection.HasQuantity() && req.Quantity == 0 {
		log.Debug().Str("resourceID", req.ResourceID).Msg("zero-quantity push treated as removal")
		return c.Delete(ctx, userID, collection, req.ResourceID)
	}

	entry := models.ResourceEntry{
		ID:         c.ids.Generate(),
		ResourceID: req.ResourceID,
		Payload:    models.CopyPayload(req.Payload),
	}
	if collection.HasQuantity() {
		entry.Quantity = req.Quantity
	}

	if err := c.collectionRepository.Upsert(ctx, userID, collection, entry); err != nil {
		return fmt.Errorf("upsert %s entry: %w", collection, err)
	}

	return nil
}

// Delete implements [CollectionSyncService].
func (c *collectionSyncService) Delete(ctx context.Context, userID int64, collection models.CollectionType, resourceID string) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrValidationUnknownCollection, collection)
	}
	if resourceID == "" {
		return ErrValidationNoResourceID
	}

	if err := c.collectionRepository.Delete(ctx, userID, collection, resourceID); err != nil {
		return fmt.Errorf("delete %s entry: %w", collection, err)
	}

	return nil
}

// Clear implements [CollectionSyncService].
func (c *collectionSyncService) Clear(ctx context.Context, userID int64, collection models.CollectionType) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrValidationUnknownCollection, collection)
	}

	if err := c.collectionRepository.Clear(ctx, userID, collection); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}

	return nil
}
