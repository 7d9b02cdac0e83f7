//go:build wireinject
// +build wireinject

package di

import (
	"loft/config"
	"loft/infras/jwt"
	"loft/infras/kafka"
	"loft/infras/otel"
	"loft/infras/postgres"
	"loft/infras/redis"
	"loft/infras/s3"
	"loft/internal/batch"
	"loft/permissions"
	"loft/shared/cache"
	"loft/transport/http"
	"loft/transport/http/middleware"
	"loft/transport/http/router"

	authService "loft/internal/domains/auth/service"
	buildingRepository "loft/internal/domains/building/repository"
	buildingService "loft/internal/domains/building/service"
	complaintRepository "loft/internal/domains/complaint/repository"
	complaintService "loft/internal/domains/complaint/service"
	contractRepository "loft/internal/domains/contract/repository"
	contractService "loft/internal/domains/contract/service"
	memberRepository "loft/internal/domains/member/repository"
	memberService "loft/internal/domains/member/service"
	roomRepository "loft/internal/domains/room/repository"
	roomService "loft/internal/domains/room/service"
	scoreRepository "loft/internal/domains/score/repository"
	scoreService "loft/internal/domains/score/service"
	tenantRepository "loft/internal/domains/tenant/repository"
	tenantService "loft/internal/domains/tenant/service"

	authHandler "loft/internal/handlers/auth"
	buildingHandler "loft/internal/handlers/building"
	complaintHandler "loft/internal/handlers/complaint"
	contractHandler "loft/internal/handlers/contract"
	memberHandler "loft/internal/handlers/member"
	roomHandler "loft/internal/handlers/room"
	scoreHandler "loft/internal/handlers/score"
	tenantHandler "loft/internal/handlers/tenant"

	"github.com/google/wire"
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
)

var authDomain = wire.NewSet(
	authService.New,
)

var memberDomain = wire.NewSet(
	memberRepository.New,
	memberService.New,
)

var buildingDomain = wire.NewSet(
	buildingRepository.New,
	buildingService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var tenantDomain = wire.NewSet(
	tenantRepository.New,
	tenantService.New,
)

var contractDomain = wire.NewSet(
	contractRepository.New,
	contractService.New,
)

var scoreDomain = wire.NewSet(
	scoreRepository.New,
	scoreService.New,
)

var complaintDomain = wire.NewSet(
	complaintRepository.New,
	complaintService.New,
)

var domains = wire.NewSet(
	authDomain,
	memberDomain,
	buildingDomain,
	roomDomain,
	tenantDomain,
	contractDomain,
	scoreDomain,
	complaintDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	memberHandler.New,
	buildingHandler.New,
	roomHandler.New,
	tenantHandler.New,
	contractHandler.New,
	scoreHandler.New,
	complaintHandler.New,
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

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		batch.NewContractRollover,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
