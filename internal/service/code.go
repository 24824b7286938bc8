package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/auth"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	domainerrors "github.com/nabilmhassnimain-alt/mtpt-server/internal/errors"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/id"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/store"
)

// codeGenerateAttempts bounds retries on a code value collision.
// With 128-bit entropy a collision is vanishingly rare.
const codeGenerateAttempts = 3

// CodeService manages opaque access codes. Static codes from configuration
// resolve before anything issued at runtime and cannot be revoked through
// the API.
type CodeService struct {
	store      *store.Store
	adminCodes []string
	userCodes  []string
	logger     *slog.Logger
}

// NewCodeService creates a new access code service.
func NewCodeService(store *store.Store, adminCodes, userCodes []string, logger *slog.Logger) *CodeService {
	return &CodeService{
		store:      store,
		adminCodes: adminCodes,
		userCodes:  userCodes,
		logger:     logger,
	}
}

// GenerateCodeRequest contains the data needed to issue an access code.
// Admin codes are never issued at runtime; they come from configuration only.
type GenerateCodeRequest struct {
	Role  domain.Role `json:"role" validate:"required,oneof=mod user"`
	Label string      `json:"label" validate:"max=200"`
}

// Generate issues a new random access code carrying the requested role.
func (s *CodeService) Generate(ctx context.Context, createdBy domain.Role, req GenerateCodeRequest) (*domain.AccessCode, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	codeID, err := id.Generate("code")
	if err != nil {
		return nil, fmt.Errorf("generate code ID: %w", err)
	}

	code := &domain.AccessCode{
		ID:        codeID,
		Role:      req.Role,
		Label:     strings.TrimSpace(req.Label),
		Active:    true,
		CreatedBy: string(createdBy),
		CreatedAt: time.Now().UTC(),
	}

	for attempt := 1; ; attempt++ {
		value, err := auth.GenerateCodeValue()
		if err != nil {
			return nil, fmt.Errorf("generate code value: %w", err)
		}
		code.Code = value

		err = s.store.CreateCode(ctx, code)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrCodeExists) {
			return nil, wrapStoreErr(err, "create code")
		}
		if attempt >= codeGenerateAttempts {
			return nil, domainerrors.Conflict("code value collision, please try again")
		}
	}

	s.logger.Info("access code generated",
		"code_id", code.ID,
		"role", code.Role,
		"label", code.Label,
	)
	return code, nil
}

// Resolve maps a presented code to a role. Statically configured codes take
// precedence: admin codes first, then user codes, then dynamically issued
// codes that are still active.
func (s *CodeService) Resolve(ctx context.Context, value string) (domain.Role, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainerrors.Unauthorized("invalid access code")
	}

	if slices.Contains(s.adminCodes, value) {
		return domain.RoleAdmin, nil
	}
	if slices.Contains(s.userCodes, value) {
		return domain.RoleUser, nil
	}

	code, err := s.store.GetCodeByCode(ctx, value)
	if err != nil {
		if errors.Is(err, store.ErrCodeNotFound) {
			return "", domainerrors.Unauthorized("invalid access code")
		}
		return "", wrapStoreErr(err, "resolve code")
	}
	if !code.Active {
		return "", domainerrors.Unauthorized("invalid access code")
	}

	return code.Role, nil
}

// List returns issued codes, oldest first.
func (s *CodeService) List(ctx context.Context, activeOnly bool) ([]*domain.AccessCode, error) {
	codes, err := s.store.ListCodes(ctx, activeOnly)
	if err != nil {
		return nil, wrapStoreErr(err, "list codes")
	}
	return codes, nil
}

// Revoke deactivates an issued code. The code stops resolving immediately;
// sessions already minted from it live until their tokens expire.
// Revoking an already revoked code is a no-op.
func (s *CodeService) Revoke(ctx context.Context, codeID string) (*domain.AccessCode, error) {
	code, err := s.store.GetCode(ctx, codeID)
	if err != nil {
		return nil, wrapStoreErr(err, "get code")
	}

	if code.Active {
		code.Active = false
		if err := s.store.UpdateCode(ctx, code); err != nil {
			return nil, wrapStoreErr(err, "update code")
		}
	}

	s.logger.Info("access code revoked", "code_id", code.ID, "role", code.Role)
	return code, nil
}

// UpdateLabelRequest renames an issued code's display label.
type UpdateLabelRequest struct {
	Label string `json:"label" validate:"max=200"`
}

// UpdateLabel changes the display label of an issued code.
func (s *CodeService) UpdateLabel(ctx context.Context, codeID string, req UpdateLabelRequest) (*domain.AccessCode, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	code, err := s.store.GetCode(ctx, codeID)
	if err != nil {
		return nil, wrapStoreErr(err, "get code")
	}

	code.Label = strings.TrimSpace(req.Label)
	if err := s.store.UpdateCode(ctx, code); err != nil {
		return nil, wrapStoreErr(err, "update code")
	}

	return code, nil
}
