//go:build wireinject
// +build wireinject

package di

import (
	"floorplan/config"
	"floorplan/infras/jwt"
	"floorplan/infras/kafka"
	"floorplan/infras/otel"
	"floorplan/infras/postgres"
	"floorplan/infras/redis"
	"floorplan/infras/s3"
	"floorplan/permissions"
	"floorplan/shared/cache"
	gRepo "floorplan/shared/repository"
	"floorplan/transport/http"
	"floorplan/transport/http/middleware"
	"floorplan/transport/http/router"
	"floorplan/transport/worker"

	"github.com/google/wire"

	authService "floorplan/internal/domains/auth/service"
	availabilityRepository "floorplan/internal/domains/availability/repository"
	availabilityService "floorplan/internal/domains/availability/service"
	blockService "floorplan/internal/domains/block/service"
	"floorplan/internal/domains/event/publisher"
	layoutRepository "floorplan/internal/domains/layout/repository"
	layoutService "floorplan/internal/domains/layout/service"
	reservationRepository "floorplan/internal/domains/reservation/repository"
	reservationService "floorplan/internal/domains/reservation/service"
	"floorplan/internal/domains/shift"
	tableRepository "floorplan/internal/domains/table/repository"
	tableService "floorplan/internal/domains/table/service"
	userRepository "floorplan/internal/domains/user/repository"

	authHandler "floorplan/internal/handlers/auth"
	availabilityHandler "floorplan/internal/handlers/availability"
	blockHandler "floorplan/internal/handlers/block"
	layoutHandler "floorplan/internal/handlers/layout"
	reservationHandler "floorplan/internal/handlers/reservation"
	tableHandler "floorplan/internal/handlers/table"
	userHandler "floorplan/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
	shift.NewResolver,
	publisher.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
	blockService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var layoutDomain = wire.NewSet(
	layoutRepository.New,
	layoutService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	tableDomain,
	reservationDomain,
	availabilityDomain,
	layoutDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	tableHandler.New,
	reservationHandler.New,
	availabilityHandler.New,
	blockHandler.New,
	layoutHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		shift.NewResolver,
		publisher.New,
		tableRepository.New,
		reservationRepository.New,
		blockService.New,
		worker.New,
	)

	return &worker.Worker{}
}

func InitializeTools() *Tools {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		jwt.New,
		s3.New,
		cache.NewRedisCache,
		shift.NewResolver,
		tableDomain,
		layoutDomain,
		authDomain,
		wire.Struct(new(Tools), "*"),
	)

	return &Tools{}
}
