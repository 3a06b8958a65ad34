package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/models"
)

// collectionRepository is the PostgreSQL-backed implementation of
// [CollectionRepository]. All queries run against the "collection_items"
// table; insertion order is preserved by ordering on the serial primary key,
// which is what makes server-side listings deterministic for clients.
type collectionRepository struct {
	*DB
	logger *logger.Logger
}

// NewCollectionRepository constructs a [CollectionRepository] backed by the
// provided database connection and logger.
func NewCollectionRepository(db *DB, logger *logger.Logger) CollectionRepository {
	return &collectionRepository{
		DB:     db,
		logger: logger,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (c *collectionRepository) List(ctx context.Context, userID int64, collection models.CollectionType) ([]models.ResourceEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("entry_id", "resource_id", "payload", "quantity").
		From("collection_items").
		Where(sq.Eq{"user_id": userID, "collection": collection.String()}).
		OrderBy("id").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.List").
			Int64("user_id", userID).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.List").
			Int64("user_id", userID).
			Str("collection", collection.String()).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ResourceEntry, 0, 16)
	for rows.Next() {
		var entry models.ResourceEntry
		var payload []byte

		if scanErr := rows.Scan(&entry.ID, &entry.ResourceID, &payload, &entry.Quantity); scanErr != nil {
			log.Err(scanErr).
				Str("func", "collectionRepository.List").
				Int64("user_id", userID).
				Msg("failed to scan collection item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entry.Payload = payload
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "collectionRepository.List").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// Upsert keeps the stored entry_id on conflict, so the entry identity a
// client assigned at first insertion survives later pushes for the same
// resource.
func (c *collectionRepository) Upsert(ctx context.Context, userID int64, collection models.CollectionType, entry models.ResourceEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Insert("collection_items").
		Columns("user_id", "collection", "entry_id", "resource_id", "payload", "quantity").
		Values(userID, collection.String(), entry.ID, entry.ResourceID, []byte(entry.Payload), entry.Quantity).
		Suffix(`ON CONFLICT (user_id, collection, resource_id)
            DO UPDATE SET payload = EXCLUDED.payload, quantity = EXCLUDED.quantity, updated_at = NOW()`).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Upsert").
			Int64("user_id", userID).
			Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Upsert").
			Int64("user_id", userID).
			Str("resource_id", entry.ResourceID).
			Msg("failed to execute upsert")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (c *collectionRepository) Delete(ctx context.Context, userID int64, collection models.CollectionType, resourceID string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete("collection_items").
		Where(sq.Eq{"user_id": userID, "collection": collection.String(), "resource_id": resourceID}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Delete").
			Int64("user_id", userID).
			Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Delete").
			Int64("user_id", userID).
			Str("resource_id", resourceID).
			Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (c *collectionRepository) Clear(ctx context.Context, userID int64, collection models.CollectionType) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete("collection_items").
		Where(sq.Eq{"user_id": userID, "collection": collection.String()}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Clear").
			Int64("user_id", userID).
			Msg("failed to build clear query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Clear").
			Int64("user_id", userID).
			Str("collection", collection.String()).
			Msg("failed to execute clear")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
