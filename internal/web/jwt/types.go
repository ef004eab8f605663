package jwt

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Handler interface {
	SetLoginToken(ctx *gin.Context, uid int64, roles []string) error
	SetJWTToken(ctx *gin.Context, uid int64, ssid string, roles []string) error
	ExtractToken(ctx *gin.Context) string
	CheckSession(ctx *gin.Context, ssid string) error
	ClearToken(ctx *gin.Context) error
}

// RefreshClaims 刷新令牌只带身份，不带角色
type RefreshClaims struct {
	jwt.RegisteredClaims
	Uid  int64
	Ssid string
}
