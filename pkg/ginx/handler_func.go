package ginx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"blog/pkg/logger"
)

// 包内共享的日志和业务码计数器，启动时注入
var (
	log    logger.Logger = logger.NewNoOpLogger()
	vector *prometheus.CounterVec
)

func SetLogger(l logger.Logger) {
	log = l
}

// InitCounter 按业务码统计响应分布
func InitCounter(opt prometheus.CounterOpts) {
	vector = prometheus.NewCounterVec(opt, []string{"code"})
	prometheus.MustRegister(vector)
}

func Wrap(fn func(ctx *gin.Context) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := fn(ctx)
		if err != nil {
			log.Error("处理业务逻辑出错",
				logger.String("path", ctx.Request.URL.Path),
				logger.Error(err))
		}
		count(res.Code)
		ctx.JSON(http.StatusOK, res)
	}
}

func WrapReq[Req any](fn func(ctx *gin.Context, req Req) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Req
		if err := ctx.Bind(&req); err != nil {
			return
		}
		res, err := fn(ctx, req)
		if err != nil {
			log.Error("处理业务逻辑出错",
				logger.String("path", ctx.Request.URL.Path),
				logger.Error(err))
		}
		count(res.Code)
		ctx.JSON(http.StatusOK, res)
	}
}

func WrapClaims(fn func(ctx *gin.Context, uc UserClaims) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uc, ok := claims(ctx)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		res, err := fn(ctx, uc)
		if err != nil {
			log.Error("处理业务逻辑出错",
				logger.String("path", ctx.Request.URL.Path),
				logger.Error(err))
		}
		count(res.Code)
		ctx.JSON(http.StatusOK, res)
	}
}

func WrapClaimsAndReq[Req any](fn func(ctx *gin.Context, req Req, uc UserClaims) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Req
		if err := ctx.Bind(&req); err != nil {
			return
		}
		uc, ok := claims(ctx)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		res, err := fn(ctx, req, uc)
		if err != nil {
			log.Error("处理业务逻辑出错",
				logger.String("path", ctx.Request.URL.Path),
				logger.Error(err))
		}
		count(res.Code)
		ctx.JSON(http.StatusOK, res)
	}
}

func claims(ctx *gin.Context) (UserClaims, bool) {
	val, ok := ctx.Get("user")
	if !ok {
		return UserClaims{}, false
	}
	uc, ok := val.(UserClaims)
	return uc, ok
}

func count(code int) {
	if vector != nil {
		vector.WithLabelValues(strconv.Itoa(code)).Inc()
	}
}
