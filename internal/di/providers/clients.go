package providers

import (
	"github.com/samber/do/v2"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/logger"
	"github.com/calsync/calsync-server/internal/provider/countriesnow"
	"github.com/calsync/calsync-server/internal/provider/nager"
)

// ProvideNagerClient provides the holiday and country info API client.
func ProvideNagerClient(i do.Injector) (*nager.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := nager.New(cfg.Providers, log.Component("nager"))
	log.Debug("Nager.Date client initialized", "base_url", cfg.Providers.NagerBaseURL)

	return client, nil
}

// ProvideCountriesNowClient provides the flag and population API client.
func ProvideCountriesNowClient(i do.Injector) (*countriesnow.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := countriesnow.New(cfg.Providers, log.Component("countriesnow"))
	log.Debug("CountriesNow client initialized", "base_url", cfg.Providers.CountriesNowBaseURL)

	return client, nil
}
