package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json/v2"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/id"
)

const (
	tokenIssuer   = "mtpt-server"
	tokenAudience = "mtpt-client"

	// Opaque access codes carry 128 bits of entropy.
	codeValueSize = 16
)

// TokenService handles PASETO session token generation and verification.
type TokenService struct {
	symmetricKey  paseto.V4SymmetricKey
	tokenDuration time.Duration
}

// NewTokenService creates a token service from a raw 32-byte key.
func NewTokenService(key []byte, tokenDuration time.Duration) (*TokenService, error) {
	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:  symmetricKey,
		tokenDuration: tokenDuration,
	}, nil
}

// GenerateSessionToken creates a PASETO v4.local token carrying the role the
// presented access code resolved to.
func (s *TokenService) GenerateSessionToken(role domain.Role) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(string(role))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.tokenDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("role", string(role))

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifySessionToken verifies and parses a PASETO session token.
// Returns the claims if valid, or an error if they're invalid or expired.
func (s *TokenService) VerifySessionToken(tokenString string) (*SessionClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims SessionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	if !claims.Role.Valid() {
		return nil, fmt.Errorf("invalid role claim: %q", claims.Role)
	}

	return &claims, nil
}

// TokenDuration returns the configured session token lifetime.
func (s *TokenService) TokenDuration() time.Duration {
	return s.tokenDuration
}

// GenerateCodeValue creates a cryptographically random opaque access code.
// NOTE: this is NOT a PASETO token, just random bytes the registry stores and
// resolves against. Returned in base64-urlencoded form.
func GenerateCodeValue() (string, error) {
	b := make([]byte, codeValueSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate code value: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
