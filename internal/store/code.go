package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
)

// Key prefixes for access code storage.
const (
	codePrefix       = "code:"           // code:{id} → AccessCode JSON
	codeByCodePrefix = "idx:codes:code:" // idx:codes:code:{code} → codeID
)

// CreateCode persists a new access code.
// The bearer string is indexed for lookup and must be unique across all
// stored codes, active or not; a collision returns ErrCodeExists.
func (s *Store) CreateCode(ctx context.Context, c *domain.AccessCode) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		idxKey := []byte(codeByCodePrefix + c.Code)
		if _, err := txn.Get(idxKey); err == nil {
			return ErrCodeExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(codePrefix+c.ID), data); err != nil {
			return err
		}

		return txn.Set(idxKey, []byte(c.ID))
	})
}

// GetCode retrieves an access code by ID.
func (s *Store) GetCode(ctx context.Context, id string) (*domain.AccessCode, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	var c domain.AccessCode
	err := s.get([]byte(codePrefix+id), &c)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// GetCodeByCode retrieves an access code by its bearer string.
func (s *Store) GetCodeByCode(ctx context.Context, code string) (*domain.AccessCode, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	var codeID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(codeByCodePrefix + code))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCodeNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			codeID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetCode(ctx, codeID)
}

// UpdateCode overwrites an existing access code record.
// The bearer string and ID are immutable; only label and active flag change
// in practice.
func (s *Store) UpdateCode(ctx context.Context, c *domain.AccessCode) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return err
	}

	key := []byte(codePrefix + c.ID)
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCodeNotFound
		} else if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// ListCodes returns all access codes, oldest first.
// When activeOnly is set, revoked codes are filtered out.
func (s *Store) ListCodes(ctx context.Context, activeOnly bool) ([]*domain.AccessCode, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	prefix := []byte(codePrefix)
	var codes []*domain.AccessCode

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var c domain.AccessCode
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &c)
			})
			if err != nil {
				continue
			}
			if activeOnly && !c.Active {
				continue
			}
			codes = append(codes, &c)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(codes, func(i, j int) bool {
		if !codes[i].CreatedAt.Equal(codes[j].CreatedAt) {
			return codes[i].CreatedAt.Before(codes[j].CreatedAt)
		}
		return codes[i].ID < codes[j].ID
	})

	return codes, nil
}
