package providers

import (
	"github.com/samber/do/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/auth"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/config"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/logger"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/service"
)

// ProvideVocabularyService provides the vocabulary registry service.
func ProvideVocabularyService(i do.Injector) (*service.VocabularyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewVocabularyService(storeHandle.Store, log.Logger), nil
}

// ProvideTextService provides the text record service.
func ProvideTextService(i do.Injector) (*service.TextService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	vocabularyService := do.MustInvoke[*service.VocabularyService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTextService(storeHandle.Store, vocabularyService, log.Logger), nil
}

// ProvideCodeService provides the access code service.
func ProvideCodeService(i do.Injector) (*service.CodeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCodeService(storeHandle.Store, cfg.Auth.AdminCodes, cfg.Auth.UserCodes, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	codeService := do.MustInvoke[*service.CodeService](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(codeService, tokenService, log.Logger), nil
}
