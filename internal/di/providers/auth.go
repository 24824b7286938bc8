package providers

import (
	"github.com/samber/do/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/auth"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/config"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/logger"
)

// AuthKey wraps the token key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the token key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	cfg.Auth.TokenKey = key

	log.Info("Token key loaded", "token_duration", cfg.Auth.TokenDuration)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.TokenDuration)
}
