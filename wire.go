//go:build wireinject

package main

import (
	"github.com/google/wire"

	events "blog/internal/events/article"
	"blog/internal/repository"
	"blog/internal/repository/cache"
	"blog/internal/repository/dao"
	"blog/internal/service"
	"blog/internal/web"
	ijwt "blog/internal/web/jwt"
	"blog/ioc"
)

func InitApp() *App {
	wire.Build(
		// 第三方依赖
		ioc.InitLogger,
		ioc.InitDB,
		ioc.InitRedis,
		ioc.InitKafka,
		ioc.NewSyncProducer,
		ioc.InitConsumerGroup,
		ioc.InitOSS,

		dao.NewGORMArticleDAO,
		dao.NewGormUserDAO,
		dao.NewGORMRoleDAO,
		dao.NewGORMWebConfigDAO,

		cache.NewRedisLikeCache,
		cache.NewRedisHotCache,
		cache.NewRedisUserCache,
		cache.NewRedisWebConfigCache,

		repository.NewCachedArticleRepository,
		repository.NewCachedUserRepository,
		repository.NewCachedRoleRepository,
		repository.NewCachedWebConfigRepository,
		repository.NewCachedRankingRepository,

		service.NewArticleService,
		service.NewUserService,
		service.NewRoleService,
		service.NewWebConfigService,
		service.NewBatchRankingService,

		events.NewKafkaProducer,
		events.NewReadEventBatchConsumer,
		ioc.NewConsumers,

		ijwt.NewRedisJWTHandler,
		web.NewArticleHandler,
		web.NewUserHandler,
		web.NewRoleHandler,
		web.NewWebConfigHandler,

		ioc.InitMiddlewares,
		ioc.InitWebServer,

		ioc.InitRankingJob,
		ioc.InitJobs,

		wire.Struct(new(App), "*"),
	)
	return new(App)
}
