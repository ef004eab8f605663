package ioc

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"blog/internal/web"
	ijwt "blog/internal/web/jwt"
	"blog/internal/web/middleware"
	"blog/pkg/ginx"
	ginprometheus "blog/pkg/ginx/middleware/prometheus"
	ginratelimit "blog/pkg/ginx/middleware/ratelimit"
	"blog/pkg/logger"
	"blog/pkg/ratelimit"
)

func InitWebServer(mdls []gin.HandlerFunc,
	artHdl *web.ArticleHandler,
	userHdl *web.UserHandler,
	roleHdl *web.RoleHandler,
	cfgHdl *web.WebConfigHandler) *gin.Engine {
	server := gin.Default()
	server.Use(mdls...)
	artHdl.RegisterRoutes(server)
	userHdl.RegisterRoutes(server)
	roleHdl.RegisterRoutes(server)
	cfgHdl.RegisterRoutes(server)
	return server
}

func InitMiddlewares(redisClient redis.Cmdable,
	jwtHdl ijwt.Handler, l logger.Logger) []gin.HandlerFunc {
	ginx.SetLogger(l)
	ginx.InitCounter(prometheus.CounterOpts{
		Namespace: "blog",
		Subsystem: "web",
		Name:      "biz_code",
		Help:      "统计业务错误码",
	})
	pb := &ginprometheus.Builder{
		Namespace:  "blog",
		Subsystem:  "web",
		Name:       "gin_http",
		InstanceId: "instance-1",
	}
	return []gin.HandlerFunc{
		corsHdl(),
		pb.BuildResponseTime(),
		pb.BuildActiveRequest(),
		ginratelimit.NewBuilder(
			ratelimit.NewRedisSlidingWindowLimiter(redisClient, time.Second, 100)).
			Build(),
		middleware.NewLoginJWTMiddlewareBuilder(jwtHdl).
			IgnorePaths("/users/login").
			IgnorePaths("/users/signup").
			IgnorePaths("/users/refresh-token").
			ProtectPrefix("/admin").
			ProtectPrefix("/users").
			Build(),
		middleware.NewPageableMiddlewareBuilder().Build(),
	}
}

func corsHdl() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowCredentials: true,
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"x-jwt-token", "x-refresh-token"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			return strings.Contains(origin, "yourcompany.com")
		},
		MaxAge: 12 * time.Hour,
	})
}
