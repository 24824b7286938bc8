package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	domainerrors "github.com/nabilmhassnimain-alt/mtpt-server/internal/errors"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/id"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/store"
)

// TextService manages text records and keeps the vocabulary registry in sync
// with the values records reference.
type TextService struct {
	store      *store.Store
	vocabulary *VocabularyService
	logger     *slog.Logger
}

// NewTextService creates a new text service.
func NewTextService(store *store.Store, vocabulary *VocabularyService, logger *slog.Logger) *TextService {
	return &TextService{
		store:      store,
		vocabulary: vocabulary,
		logger:     logger,
	}
}

// CreateTextRequest contains the data needed to create a text record.
type CreateTextRequest struct {
	Primary      string            `json:"primary" validate:"required,max=10000"`
	Translations map[string]string `json:"translations"`
	Tags         []string          `json:"tags"`
	Playlists    []string          `json:"playlists"`
}

// UpdateTextRequest carries a partial update. Nil fields are left untouched;
// a present empty slice or map clears the field.
type UpdateTextRequest struct {
	Primary      *string            `json:"primary" validate:"omitempty,max=10000"`
	Translations *map[string]string `json:"translations"`
	Tags         *[]string          `json:"tags"`
	Playlists    *[]string          `json:"playlists"`
}

// Create stores a new text record. Records created by admins are active
// immediately; moderator submissions start pending and need approval.
// Any tag or playlist values the record references are registered in the
// vocabulary as a side effect.
func (s *TextService) Create(ctx context.Context, role domain.Role, req CreateTextRequest) (*domain.Text, error) {
	if !role.CanEdit() {
		return nil, domainerrors.Forbidden("role cannot create texts")
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	primary := strings.TrimSpace(req.Primary)
	if primary == "" {
		return nil, domainerrors.Validation("primary cannot be empty")
	}
	if err := validateTranslations(req.Translations); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if role == domain.RoleAdmin {
		status = domain.StatusActive
	}

	textID, err := id.Generate("text")
	if err != nil {
		return nil, fmt.Errorf("generate text ID: %w", err)
	}

	text := &domain.Text{
		ID:           textID,
		Primary:      primary,
		Translations: orEmptyMap(req.Translations),
		Tags:         cleanValues(req.Tags),
		Playlists:    cleanValues(req.Playlists),
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateText(ctx, text); err != nil {
		return nil, wrapStoreErr(err, "create text")
	}

	s.vocabulary.registerValues(ctx, text)

	s.logger.Info("text created",
		"text_id", text.ID,
		"status", text.Status,
		"role", role,
	)
	return text, nil
}

// Get returns a single text record. Plain users only see active records.
func (s *TextService) Get(ctx context.Context, role domain.Role, textID string) (*domain.Text, error) {
	text, err := s.store.GetText(ctx, textID)
	if err != nil {
		return nil, wrapStoreErr(err, "get text")
	}
	if !role.CanEdit() && text.Status != domain.StatusActive {
		return nil, domainerrors.NotFound("text not found")
	}
	return text, nil
}

// List returns text records in creation order. Plain users only see active
// records; editors see everything.
func (s *TextService) List(ctx context.Context, role domain.Role) ([]*domain.Text, error) {
	status := domain.Status("")
	if !role.CanEdit() {
		status = domain.StatusActive
	}

	texts, err := s.store.ListTexts(ctx, status)
	if err != nil {
		return nil, wrapStoreErr(err, "list texts")
	}
	return texts, nil
}

// ListPending returns records awaiting approval, oldest first.
func (s *TextService) ListPending(ctx context.Context) ([]*domain.Text, error) {
	texts, err := s.store.ListTexts(ctx, domain.StatusPending)
	if err != nil {
		return nil, wrapStoreErr(err, "list pending texts")
	}
	return texts, nil
}

// Update applies a partial update to a text record. Fields absent from the
// request keep their stored values. Newly referenced tag and playlist values
// are registered in the vocabulary.
func (s *TextService) Update(ctx context.Context, textID string, req UpdateTextRequest) (*domain.Text, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	text, err := s.store.GetText(ctx, textID)
	if err != nil {
		return nil, wrapStoreErr(err, "get text")
	}

	if req.Primary != nil {
		primary := strings.TrimSpace(*req.Primary)
		if primary == "" {
			return nil, domainerrors.Validation("primary cannot be empty")
		}
		text.Primary = primary
	}
	if req.Translations != nil {
		if err := validateTranslations(*req.Translations); err != nil {
			return nil, err
		}
		text.Translations = orEmptyMap(*req.Translations)
	}
	if req.Tags != nil {
		text.Tags = cleanValues(*req.Tags)
	}
	if req.Playlists != nil {
		text.Playlists = cleanValues(*req.Playlists)
	}

	if err := s.store.UpdateText(ctx, text); err != nil {
		return nil, wrapStoreErr(err, "update text")
	}

	s.vocabulary.registerValues(ctx, text)

	s.logger.Info("text updated", "text_id", text.ID)
	return text, nil
}

// Approve transitions a pending record to active. Approving an already
// active record is a no-op.
func (s *TextService) Approve(ctx context.Context, textID string) (*domain.Text, error) {
	text, err := s.store.GetText(ctx, textID)
	if err != nil {
		return nil, wrapStoreErr(err, "get text")
	}

	if text.Status == domain.StatusActive {
		return text, nil
	}

	text.Status = domain.StatusActive
	if err := s.store.UpdateText(ctx, text); err != nil {
		return nil, wrapStoreErr(err, "update text")
	}

	s.logger.Info("text approved", "text_id", text.ID)
	return text, nil
}

// Delete removes a text record. Vocabulary values it referenced stay
// registered; the vocabulary is an index of allowed values, not a refcount.
func (s *TextService) Delete(ctx context.Context, textID string) error {
	deleted, err := s.store.DeleteText(ctx, textID)
	if err != nil {
		return wrapStoreErr(err, "delete text")
	}
	if !deleted {
		return domainerrors.NotFound("text not found")
	}

	s.logger.Info("text deleted", "text_id", textID)
	return nil
}

// validateTranslations checks that every translation targets a supported
// language.
func validateTranslations(translations map[string]string) error {
	for lang := range translations {
		if !domain.IsTranslationLanguage(lang) {
			return domainerrors.Validationf("unsupported translation language %q", lang)
		}
	}
	return nil
}

// cleanValues trims whitespace and drops empty or duplicate entries while
// preserving order.
func cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
