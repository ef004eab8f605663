package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	ijwt "blog/internal/web/jwt"
	"blog/pkg/ginx"
)

// LoginJWTMiddlewareBuilder 校验访问令牌并把用户信息放进请求作用域。
// 带了合法令牌的请求无论访问哪个路径都会解析出用户信息，
// 只有受保护前缀下的路径才强制要求登录
type LoginJWTMiddlewareBuilder struct {
	ignorePaths       []string
	protectedPrefixes []string
	jwtHdl            ijwt.Handler
}

func NewLoginJWTMiddlewareBuilder(jwtHdl ijwt.Handler) *LoginJWTMiddlewareBuilder {
	return &LoginJWTMiddlewareBuilder{
		jwtHdl: jwtHdl,
	}
}

func (l *LoginJWTMiddlewareBuilder) IgnorePaths(path string) *LoginJWTMiddlewareBuilder {
	l.ignorePaths = append(l.ignorePaths, path)
	return l
}

func (l *LoginJWTMiddlewareBuilder) ProtectPrefix(prefix string) *LoginJWTMiddlewareBuilder {
	l.protectedPrefixes = append(l.protectedPrefixes, prefix)
	return l
}

func (l *LoginJWTMiddlewareBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := l.jwtHdl.ExtractToken(ctx)
		if tokenStr != "" {
			var uc ginx.UserClaims
			token, err := jwtv5.ParseWithClaims(tokenStr, &uc,
				func(token *jwtv5.Token) (interface{}, error) {
					return ijwt.AtKey, nil
				})
			if err == nil && token != nil && token.Valid &&
				uc.Type == ijwt.TokenTypeAccess &&
				l.jwtHdl.CheckSession(ctx, uc.Ssid) == nil {
				ctx.Set("user", uc)
			}
		}
		if !l.requiresLogin(ctx.Request.URL.Path) {
			return
		}
		if _, ok := ctx.Get("user"); !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
		}
	}
}

func (l *LoginJWTMiddlewareBuilder) requiresLogin(path string) bool {
	for _, p := range l.ignorePaths {
		if path == p {
			return false
		}
	}
	for _, prefix := range l.protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
