package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    rev   INTEGER NOT NULL DEFAULT 1
);`

// SQLiteKeyValue is a durable [KeyValue] backed by a single-table SQLite
// database. It is the backing store used when collection state must survive
// a full process restart.
//
// SQLite has no cross-process change notification, so the change feed is a
// revision poller: every write bumps the row's rev counter, and [Run] polls
// for revisions this handle has not produced itself. Self-written revisions
// are remembered and suppressed, matching the rule that a context never
// observes its own writes.
type SQLiteKeyValue struct {
	db           *sql.DB
	pollInterval time.Duration
	logger       *logger.Logger

	mu      sync.Mutex
	subs    map[int]memorySubscription
	nextSub int
	seen    map[string]int64 // last rev observed or written per key
}

// NewSQLiteKeyValue opens (creating if needed) the SQLite store at cfg.Path
// and prepares the kv table. An empty path selects ":memory:".
func NewSQLiteKeyValue(cfg config.ClientStorage, log *logger.Logger) (*SQLiteKeyValue, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err = db.Exec(createKVTable); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}

	log.Info().Str("path", path).Msg("sqlite key-value store opened")

	return &SQLiteKeyValue{
		db:           db,
		pollInterval: pollInterval,
		logger:       log,
		subs:         make(map[int]memorySubscription),
		seen:         make(map[string]int64),
	}, nil
}

// Get implements [KeyValue].
func (s *SQLiteKeyValue) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("read kv row: %w", err)
	}
	return value, nil
}

// Set implements [KeyValue]. The new revision is recorded as seen so the
// poller never redelivers this handle's own write.
func (s *SQLiteKeyValue) Set(key, value string) error {
	var rev int64
	err := s.db.QueryRow(
		`INSERT INTO kv (key, value, rev) VALUES (?, ?, 1)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, rev = kv.rev + 1
         RETURNING rev`,
		key, value,
	).Scan(&rev)
	if err != nil {
		if strings.Contains(err.Error(), "database or disk is full") {
			return fmt.Errorf("%w: key %q: %w", ErrQuotaExceeded, key, err)
		}
		return fmt.Errorf("write kv row: %w", err)
	}

	s.mu.Lock()
	s.seen[key] = rev
	s.mu.Unlock()

	return nil
}

// Subscribe implements [KeyValue].
func (s *SQLiteKeyValue) Subscribe(key string, fn func(value string)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = memorySubscription{key: key, fn: fn}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Run polls the revision counters of subscribed keys until ctx is cancelled,
// dispatching change notifications for writes made by other processes.
// It is intended to be launched as a background worker.
func (s *SQLiteKeyValue) Run(ctx context.Context) {
	t := time.NewTicker(s.pollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.poll()
		}
	}
}

func (s *SQLiteKeyValue) poll() {
	rows, err := s.db.Query(`SELECT key, value, rev FROM kv`)
	if err != nil {
		s.logger.Err(err).Str("func", "SQLiteKeyValue.poll").Msg("poll kv revisions")
		return
	}
	defer rows.Close()

	type change struct {
		key   string
		value string
	}
	var changes []change

	s.mu.Lock()
	for rows.Next() {
		var key, value string
		var rev int64
		if err := rows.Scan(&key, &value, &rev); err != nil {
			s.logger.Err(err).Str("func", "SQLiteKeyValue.poll").Msg("scan kv row")
			continue
		}
		if rev > s.seen[key] {
			s.seen[key] = rev
			changes = append(changes, change{key: key, value: value})
		}
	}
	type dispatch struct {
		fn    func(value string)
		value string
	}
	var dispatches []dispatch
	for _, ch := range changes {
		for _, sub := range s.subs {
			if sub.key == ch.key {
				dispatches = append(dispatches, dispatch{fn: sub.fn, value: ch.value})
			}
		}
	}
	s.mu.Unlock()

	if err := rows.Err(); err != nil {
		s.logger.Err(err).Str("func", "SQLiteKeyValue.poll").Msg("kv rows iteration")
	}

	for _, d := range dispatches {
		d.fn(d.value)
	}
}

// Close releases the underlying database handle.
func (s *SQLiteKeyValue) Close() error {
	return s.db.Close()
}
