package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
)

// textPrefix keys text records: text:{id} → Text JSON.
const textPrefix = "text:"

// CreateText persists a new text record.
func (s *Store) CreateText(ctx context.Context, t *domain.Text) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return err
	}

	return s.set([]byte(textPrefix+t.ID), t)
}

// GetText retrieves a text record by ID.
func (s *Store) GetText(ctx context.Context, id string) (*domain.Text, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	var t domain.Text
	err := s.get([]byte(textPrefix+id), &t)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrTextNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// UpdateText overwrites an existing text record.
// Returns ErrTextNotFound if the record does not exist.
func (s *Store) UpdateText(ctx context.Context, t *domain.Text) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return err
	}

	key := []byte(textPrefix + t.ID)
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTextNotFound
		} else if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// DeleteText removes a text record.
// Returns false if the record did not exist. The vocabulary singleton is
// never touched here; orphaned vocabulary entries are expected.
func (s *Store) DeleteText(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return false, err
	}

	key := []byte(textPrefix + id)
	found := false

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		found = true
		return txn.Delete(key)
	})

	return found, err
}

// ListTexts returns all text records, oldest first.
// An empty status lists everything; otherwise only records with that status.
func (s *Store) ListTexts(ctx context.Context, status domain.Status) ([]*domain.Text, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	prefix := []byte(textPrefix)
	var texts []*domain.Text

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchSize = 100

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var t domain.Text
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &t)
			})
			if err != nil {
				continue
			}
			if status != "" && t.Status != status {
				continue
			}
			texts = append(texts, &t)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Sort by creation time ascending, then by ID for stability.
	sort.Slice(texts, func(i, j int) bool {
		if !texts[i].CreatedAt.Equal(texts[j].CreatedAt) {
			return texts[i].CreatedAt.Before(texts[j].CreatedAt)
		}
		return texts[i].ID < texts[j].ID
	})

	return texts, nil
}
