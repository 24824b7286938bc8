package store

import (
	"context"
	"encoding/json/v2"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
)

// vocabPrefix keys the vocabulary singleton: vocab:{id} → VocabularyList JSON.
// There is exactly one document, keyed by domain.VocabularyID.
const vocabPrefix = "vocab:"

// GetVocabulary retrieves the vocabulary singleton, creating it empty if it
// does not yet exist.
func (s *Store) GetVocabulary(ctx context.Context) (*domain.VocabularyList, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	key := []byte(vocabPrefix + domain.VocabularyID)
	var v domain.VocabularyList

	err := s.get(key, &v)
	if err == nil {
		return &v, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}

	// First access: persist an empty singleton so later reads and writes
	// see the same document.
	empty := domain.NewVocabularyList()
	err = s.db.Update(func(txn *badger.Txn) error {
		// Another caller may have won the race.
		if item, err := txn.Get(key); err == nil {
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, empty)
			})
		}
		data, err := json.Marshal(empty)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}

	return empty, nil
}

// PutVocabulary overwrites the vocabulary singleton.
func (s *Store) PutVocabulary(ctx context.Context, v *domain.VocabularyList) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := checkCtx(ctx); err != nil {
		return err
	}

	v.ID = domain.VocabularyID
	return s.set([]byte(vocabPrefix+v.ID), v)
}
