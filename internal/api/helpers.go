package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	domainerrors "github.com/nabilmhassnimain-alt/mtpt-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the
// session role. Falls back to the session cookie when no header is present,
// so browser clients work without a bearer token.
func (s *Server) authenticateRequest(authHeader, cookieToken string) (domain.Role, error) {
	token := cookieToken

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", huma.Error401Unauthorized("Invalid authorization header format")
		}
		token = parts[1]
	}

	if token == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	claims, err := s.services.Auth.VerifyToken(token)
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims.Role, nil
}

// authenticateAndRequireEditor validates the token and requires admin or mod role.
func (s *Server) authenticateAndRequireEditor(authHeader, cookieToken string) (domain.Role, error) {
	role, err := s.authenticateRequest(authHeader, cookieToken)
	if err != nil {
		return "", err
	}

	if !role.CanEdit() {
		return "", domainerrors.Forbidden("Edit permission required")
	}

	return role, nil
}

// authenticateAndRequireAdmin validates the token and requires admin role.
func (s *Server) authenticateAndRequireAdmin(authHeader, cookieToken string) (domain.Role, error) {
	role, err := s.authenticateRequest(authHeader, cookieToken)
	if err != nil {
		return "", err
	}

	if role != domain.RoleAdmin {
		return "", domainerrors.Forbidden("Admin access required")
	}

	return role, nil
}
