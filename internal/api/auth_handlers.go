package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/service"
)

// sessionCookieName is the HttpOnly cookie carrying the session token for
// browser clients. API clients use the Authorization header instead.
const sessionCookieName = "mtpt_session"

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in with an access code",
		Description: "Exchanges an access code for a session token carrying the code's role",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current session",
		Description: "Returns the role of the current session",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Clears the session cookie. Bearer tokens simply expire.",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)
}

// === DTOs ===

// LoginRequest is the request body for login.
type LoginRequest struct {
	Code string `json:"code" validate:"required" doc:"Access code"`
}

// LoginInput wraps the login request with headers for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// LoginResponse contains the session token and its role.
type LoginResponse struct {
	Token     string      `json:"token" doc:"PASETO session token"`
	Role      domain.Role `json:"role" doc:"Role granted by the access code"`
	ExpiresAt time.Time   `json:"expiresAt" doc:"Token expiry time"`
}

// LoginOutput wraps the login response and sets the session cookie.
type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      LoginResponse
}

// MeInput contains parameters for the current-session endpoint.
type MeInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
}

// MeResponse contains the current session's role.
type MeResponse struct {
	Role domain.Role `json:"role" doc:"Role of the current session"`
}

// MeOutput wraps the session response for Huma.
type MeOutput struct {
	Body MeResponse
}

// LogoutOutput clears the session cookie.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      MessageResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	ip := extractIP(input.XForwardedFor, input.XRealIP)
	if !s.authRateLimiter.Allow(ip) {
		s.logger.Warn("login rate limit exceeded", "ip", ip)
		return nil, huma.Error429TooManyRequests("Too many login attempts. Please try again later.")
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{Code: input.Body.Code})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		SetCookie: http.Cookie{
			Name:     sessionCookieName,
			Value:    resp.Token,
			Path:     "/",
			Expires:  resp.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		Body: LoginResponse{
			Token:     resp.Token,
			Role:      resp.Role,
			ExpiresAt: resp.ExpiresAt,
		},
	}, nil
}

func (s *Server) handleMe(_ context.Context, input *MeInput) (*MeOutput, error) {
	role, err := s.authenticateRequest(input.Authorization, input.Session)
	if err != nil {
		return nil, err
	}

	return &MeOutput{Body: MeResponse{Role: role}}, nil
}

func (s *Server) handleLogout(_ context.Context, _ *struct{}) (*LogoutOutput, error) {
	return &LogoutOutput{
		SetCookie: http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		Body: MessageResponse{Message: "Logged out"},
	}, nil
}

// extractIP returns the client IP from forwarding headers.
func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		for i := 0; i < len(xForwardedFor); i++ {
			if xForwardedFor[i] == ',' {
				return xForwardedFor[:i]
			}
		}
		return xForwardedFor
	}
	return xRealIP
}
