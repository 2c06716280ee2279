// Package providers contains dependency injection providers for the calsync server and CLI.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/logger"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Debug("Configuration loaded",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"database_driver", cfg.Database.Driver,
		"nager_base_url", cfg.Providers.NagerBaseURL,
		"countries_now_base_url", cfg.Providers.CountriesNowBaseURL,
	)

	return log, nil
}
