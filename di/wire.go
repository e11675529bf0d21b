//go:build wireinject
// +build wireinject

package di

import (
	"studio/config"
	"studio/infras/jwt"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/infras/redis"
	"studio/internal/notifier"
	"studio/permissions"
	"studio/shared/cache"
	"studio/transport/http"
	"studio/transport/http/middleware"
	"studio/transport/http/router"
	"studio/transport/scheduler"

	bookingModel "studio/internal/domains/booking/model"
	bookingRepository "studio/internal/domains/booking/repository"
	bookingService "studio/internal/domains/booking/service"
	calendarRepository "studio/internal/domains/calendar/repository"
	calendarService "studio/internal/domains/calendar/service"
	catalogRepository "studio/internal/domains/catalog/repository"
	catalogService "studio/internal/domains/catalog/service"
	clientRepository "studio/internal/domains/client/repository"
	clientService "studio/internal/domains/client/service"
	slotRepository "studio/internal/domains/slot/repository"
	slotService "studio/internal/domains/slot/service"

	bookingHandler "studio/internal/handlers/booking"
	calendarHandler "studio/internal/handlers/calendar"
	catalogHandler "studio/internal/handlers/catalog"
	slotHandler "studio/internal/handlers/slot"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notifications = wire.NewSet(
	notifier.NewSink,
	notifier.NewQueue,
	wire.Bind(new(notifier.Notifier), new(*notifier.Dispatcher)),
)

var calendarDomain = wire.NewSet(
	calendarRepository.New,
	calendarService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var clientDomain = wire.NewSet(
	clientRepository.New,
	clientService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingModel.NewRules,
	bookingService.SystemClock,
	bookingService.New,
)

var domains = wire.NewSet(
	calendarDomain,
	slotDomain,
	catalogDomain,
	clientDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	slotHandler.New,
	calendarHandler.New,
	catalogHandler.New,
	router.New,
)

func InitializeService() (*Application, func()) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		notifications,
		domains,
		routing,
		http.New,
		scheduler.New,
		wire.Struct(new(Application), "*"),
	)

	return nil, nil
}
