package api

import (
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/service"
)

// Services holds all application services used by handlers.
type Services struct {
	Auth       *service.AuthService
	Vocabulary *service.VocabularyService
	Text       *service.TextService
	Code       *service.CodeService
}
