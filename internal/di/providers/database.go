package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/logger"
	"github.com/calsync/calsync-server/internal/store"
	"github.com/calsync/calsync-server/internal/store/postgres"
	"github.com/calsync/calsync-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured calendar store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeLog := log.Component("store")

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Database.DSN, storeLog)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "driver", cfg.Database.Driver)
		return &StoreHandle{Store: db}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.Path, storeLog)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "driver", cfg.Database.Driver, "path", cfg.Database.Path)
		return &StoreHandle{Store: db}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
