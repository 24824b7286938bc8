// Package di provides dependency injection configuration for the mt-pt server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/auth"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/config"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/di/providers"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/logger"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideVocabularyService)
	do.Provide(injector, providers.ProvideTextService)
	do.Provide(injector, providers.ProvideCodeService)
	do.Provide(injector, providers.ProvideAuthService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.VocabularyService](injector)
	_ = do.MustInvoke[*service.TextService](injector)
	_ = do.MustInvoke[*service.CodeService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
