package providers

import (
	"github.com/samber/do/v2"

	"github.com/calsync/calsync-server/internal/logger"
	"github.com/calsync/calsync-server/internal/provider/countriesnow"
	"github.com/calsync/calsync-server/internal/provider/nager"
	"github.com/calsync/calsync-server/internal/service"
	"github.com/calsync/calsync-server/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCountryService provides the country data service.
func ProvideCountryService(i do.Injector) (*service.CountryService, error) {
	nagerClient := do.MustInvoke[*nager.Client](i)
	countriesNowClient := do.MustInvoke[*countriesnow.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCountryService(nagerClient, nagerClient, countriesNowClient, log.Component("country")), nil
}

// ProvideCalendarService provides the holiday calendar sync service.
func ProvideCalendarService(i do.Injector) (*service.CalendarService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	nagerClient := do.MustInvoke[*nager.Client](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCalendarService(storeHandle.Store, nagerClient, validator, log.Component("calendar")), nil
}

// ProvideUserService provides the user service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, validator, log.Component("users")), nil
}
