// Package service contains the application services sitting between the HTTP
// layer and the store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/auth"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	domainerrors "github.com/nabilmhassnimain-alt/mtpt-server/internal/errors"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/validation"
)

// validate is the shared validator instance for request payloads.
var validate = validation.New()

// AuthService exchanges access codes for session tokens.
type AuthService struct {
	codes        *CodeService
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(codes *CodeService, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		codes:        codes,
		tokenService: tokenService,
		logger:       logger,
	}
}

// LoginRequest contains the presented access code.
type LoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// LoginResponse contains the minted session token and its role.
type LoginResponse struct {
	Token     string      `json:"token"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Login resolves the access code and mints a session token for the role it
// carries. Invalid and revoked codes fail identically so callers can't probe
// which codes exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	role, err := s.codes.Resolve(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenService.GenerateSessionToken(role)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	s.logger.Info("login succeeded", "role", role)

	return &LoginResponse{
		Token:     token,
		Role:      role,
		ExpiresAt: time.Now().Add(s.tokenService.TokenDuration()),
	}, nil
}

// VerifyToken validates a session token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*auth.SessionClaims, error) {
	claims, err := s.tokenService.VerifySessionToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}

// TokenDuration returns the session token lifetime.
func (s *AuthService) TokenDuration() time.Duration {
	return s.tokenService.TokenDuration()
}
