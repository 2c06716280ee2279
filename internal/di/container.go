// Package di provides dependency injection configuration for calsync.
package di

import (
	"github.com/samber/do/v2"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/di/providers"
	"github.com/calsync/calsync-server/internal/logger"
	"github.com/calsync/calsync-server/internal/service"
)

// NewContainer creates the DI container for an already loaded config.
// The HTTP server is registered but only started by Bootstrap, so the CLI can
// reuse the container without binding a port.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// External APIs
	do.Provide(injector, providers.ProvideNagerClient)
	do.Provide(injector, providers.ProvideCountriesNowClient)

	// Business services
	do.Provide(injector, providers.ProvideCountryService)
	do.Provide(injector, providers.ProvideCalendarService)
	do.Provide(injector, providers.ProvideUserService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CountryService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CalendarService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.UserService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
