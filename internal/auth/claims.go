package auth

import (
	"time"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
)

// SessionClaims represents the claims stored in a PASETO session token.
// These are encrypted in v4.local tokens, so they're not readable without
// the key.
type SessionClaims struct {
	Role domain.Role `json:"role"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
