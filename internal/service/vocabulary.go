package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	domainerrors "github.com/nabilmhassnimain-alt/mtpt-server/internal/errors"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/store"
)

// VocabularyService orchestrates the shared tag and playlist vocabularies.
// Vocabulary values are community-wide; changes cascade into every text
// record that references them.
type VocabularyService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewVocabularyService creates a new vocabulary service.
func NewVocabularyService(store *store.Store, logger *slog.Logger) *VocabularyService {
	return &VocabularyService{
		store:  store,
		logger: logger,
	}
}

// List returns the current vocabulary singleton.
func (s *VocabularyService) List(ctx context.Context) (*domain.VocabularyList, error) {
	v, err := s.store.GetVocabulary(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "get vocabulary")
	}
	return v, nil
}

// AddItem registers a new value in the given vocabulary list.
// Returns false if the value was already present; adding is idempotent.
func (s *VocabularyService) AddItem(ctx context.Context, lt domain.ListType, value string) (bool, error) {
	value, err := normalizeValue(lt, value)
	if err != nil {
		return false, err
	}

	v, err := s.store.GetVocabulary(ctx)
	if err != nil {
		return false, wrapStoreErr(err, "get vocabulary")
	}

	if !v.Add(lt, value) {
		return false, nil
	}

	if err := s.store.PutVocabulary(ctx, v); err != nil {
		return false, wrapStoreErr(err, "put vocabulary")
	}

	s.logger.Info("vocabulary item added", "list", lt, "value", value)
	return true, nil
}

// RenameItem renames a vocabulary value and rewrites every text record that
// references it. When the new value already exists the two entries merge:
// the vocabulary keeps a single entry and affected records are deduplicated.
//
// The vocabulary change commits first; per-record rewrites are best-effort.
// Returns the number of text records actually updated.
func (s *VocabularyService) RenameItem(ctx context.Context, lt domain.ListType, oldValue, newValue string) (int, error) {
	oldValue = strings.TrimSpace(oldValue)
	newValue, err := normalizeValue(lt, newValue)
	if err != nil {
		return 0, err
	}
	if oldValue == newValue {
		return 0, domainerrors.Validation("old and new values are identical")
	}

	v, err := s.store.GetVocabulary(ctx)
	if err != nil {
		return 0, wrapStoreErr(err, "get vocabulary")
	}

	if !v.Rename(lt, oldValue, newValue) {
		return 0, domainerrors.NotFoundf("%s %q not found", lt.Singular(), oldValue)
	}

	if err := s.store.PutVocabulary(ctx, v); err != nil {
		return 0, wrapStoreErr(err, "put vocabulary")
	}

	updated := s.rewriteTexts(ctx, lt, oldValue, func(t *domain.Text) bool {
		return t.ReplaceListValue(lt, oldValue, newValue)
	})

	s.logger.Info("vocabulary item renamed",
		"list", lt,
		"old_value", oldValue,
		"new_value", newValue,
		"updated_texts", updated,
	)
	return updated, nil
}

// DeleteItem removes a vocabulary value and strips it from every text record
// that references it. Records keep their remaining values; no placeholder is
// left behind.
//
// The vocabulary change commits first; per-record rewrites are best-effort.
// Returns the number of text records actually updated.
func (s *VocabularyService) DeleteItem(ctx context.Context, lt domain.ListType, value string) (int, error) {
	value = strings.TrimSpace(value)
	if !lt.Valid() {
		return 0, domainerrors.Validationf("unknown vocabulary list %q", lt)
	}

	v, err := s.store.GetVocabulary(ctx)
	if err != nil {
		return 0, wrapStoreErr(err, "get vocabulary")
	}

	if !v.Remove(lt, value) {
		return 0, domainerrors.NotFoundf("%s %q not found", lt.Singular(), value)
	}

	if err := s.store.PutVocabulary(ctx, v); err != nil {
		return 0, wrapStoreErr(err, "put vocabulary")
	}

	updated := s.rewriteTexts(ctx, lt, value, func(t *domain.Text) bool {
		return t.RemoveListValue(lt, value)
	})

	s.logger.Info("vocabulary item deleted",
		"list", lt,
		"value", value,
		"updated_texts", updated,
	)
	return updated, nil
}

// registerValues adds any vocabulary values a text record references that the
// vocabulary doesn't know yet. Failures are logged, never surfaced: a text
// write must not fail because the vocabulary index lagged behind.
func (s *VocabularyService) registerValues(ctx context.Context, t *domain.Text) {
	v, err := s.store.GetVocabulary(ctx)
	if err != nil {
		s.logger.Warn("could not load vocabulary for registration", "text_id", t.ID, "error", err)
		return
	}

	dirty := false
	for _, lt := range []domain.ListType{domain.ListTags, domain.ListPlaylists} {
		for _, value := range v.Missing(lt, t.ListValues(lt)) {
			if v.Add(lt, value) {
				dirty = true
			}
		}
	}
	if !dirty {
		return
	}

	if err := s.store.PutVocabulary(ctx, v); err != nil {
		s.logger.Warn("could not register vocabulary values", "text_id", t.ID, "error", err)
	}
}

// rewriteTexts applies mutate to every text referencing value in the given
// list and persists the changed records. Individual failures are logged and
// skipped; the returned count covers successful writes only.
func (s *VocabularyService) rewriteTexts(ctx context.Context, lt domain.ListType, value string, mutate func(*domain.Text) bool) int {
	texts, err := s.store.ListTexts(ctx, "")
	if err != nil {
		s.logger.Warn("cascade skipped: could not list texts", "list", lt, "value", value, "error", err)
		return 0
	}

	updated := 0
	for _, t := range texts {
		if !mutate(t) {
			continue
		}
		if err := s.store.UpdateText(ctx, t); err != nil {
			s.logger.Warn("cascade write failed", "text_id", t.ID, "list", lt, "value", value, "error", err)
			continue
		}
		updated++
	}
	return updated
}

// normalizeValue trims the value and checks the list type.
func normalizeValue(lt domain.ListType, value string) (string, error) {
	if !lt.Valid() {
		return "", domainerrors.Validationf("unknown vocabulary list %q", lt)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainerrors.Validationf("%s value cannot be empty", lt.Singular())
	}
	return value, nil
}

// wrapStoreErr maps store failures onto the domain error taxonomy.
func wrapStoreErr(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return domainerrors.StoreUnavailable("storage is unavailable").WithCause(err)
	case errors.Is(err, store.ErrTextNotFound):
		return domainerrors.NotFound("text not found")
	case errors.Is(err, store.ErrCodeNotFound):
		return domainerrors.NotFound("access code not found")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
