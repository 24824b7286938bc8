package providers

import (
	"github.com/samber/do/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/config"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/logger"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := cfg.StorePath()
	db, err := store.New(dbPath, log.Logger, store.WithOpTimeout(cfg.Data.StoreTimeout))
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
