// Package store persists texts, access codes, and the vocabulary singleton
// as JSON documents in a Badger key/value database.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// defaultOpTimeout bounds every store operation. Expiry surfaces as
// ErrUnavailable rather than hanging the caller.
const defaultOpTimeout = 10 * time.Second

// Store wraps a Badger database instance.
// It is explicitly constructed and passed to services; there is no
// package-level connection state.
type Store struct {
	db        *badger.DB
	logger    *slog.Logger
	opTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithOpTimeout overrides the per-operation timeout. The deadline is checked
// when an operation starts; Badger transactions are not context-aware, so an
// in-flight transaction is never interrupted.
func WithOpTimeout(d time.Duration) Option {
	return func(s *Store) { s.opTimeout = d }
}

// New opens the database at path and returns a ready Store.
func New(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	badgerOpts := badger.DefaultOptions(path)
	badgerOpts.Logger = nil            // Disable Badger's internal logging
	badgerOpts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	badgerOpts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:        db,
		logger:    logger,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range opts {
		opt(store)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// opCtx derives a bounded context for a single store operation.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// checkCtx maps context expiry to the store's availability error.
func checkCtx(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// Helper methods for database operations.

// get retrieves a JSON document by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a JSON document by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}
