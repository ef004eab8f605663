package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"blog/pkg/ginx"
)

var (
	// AtKey 访问令牌的签名 key
	AtKey = []byte("rM5Vx8jKpL2wQ7zN4cF9hT6bY3dG1sEu")
	// RtKey 刷新令牌的签名 key
	RtKey = []byte("rM5Vx8jKpL2wQ7zN4cF9hT6bY3dG1sEa")
)

const (
	// TokenTypeAccess 访问令牌
	TokenTypeAccess = "access"
	// TokenTypeRefresh 刷新令牌
	TokenTypeRefresh = "refresh"
)

type RedisJWTHandler struct {
	cmd          redis.Cmdable
	atExpiration time.Duration
	rtExpiration time.Duration
}

func NewRedisJWTHandler(cmd redis.Cmdable) Handler {
	return &RedisJWTHandler{
		cmd:          cmd,
		atExpiration: time.Minute * 30,
		rtExpiration: time.Hour * 24 * 7,
	}
}

func (h *RedisJWTHandler) SetLoginToken(ctx *gin.Context, uid int64, roles []string) error {
	ssid := uuid.New().String()
	err := h.setRefreshToken(ctx, uid, ssid)
	if err != nil {
		return err
	}
	return h.SetJWTToken(ctx, uid, ssid, roles)
}

func (h *RedisJWTHandler) SetJWTToken(ctx *gin.Context, uid int64, ssid string, roles []string) error {
	claims := ginx.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.atExpiration)),
		},
		Uid:   uid,
		Ssid:  ssid,
		Roles: roles,
		Type:  TokenTypeAccess,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenStr, err := token.SignedString(AtKey)
	if err != nil {
		return err
	}
	ctx.Header("x-jwt-token", tokenStr)
	return nil
}

func (h *RedisJWTHandler) setRefreshToken(ctx *gin.Context, uid int64, ssid string) error {
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.rtExpiration)),
		},
		Uid:  uid,
		Ssid: ssid,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenStr, err := token.SignedString(RtKey)
	if err != nil {
		return err
	}
	ctx.Header("x-refresh-token", tokenStr)
	return nil
}

// ExtractToken 从 Authorization 头取出 Bearer 后面的部分
func (h *RedisJWTHandler) ExtractToken(ctx *gin.Context) string {
	tokenHeader := ctx.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(tokenHeader) <= len(prefix) || tokenHeader[:len(prefix)] != prefix {
		return ""
	}
	return tokenHeader[len(prefix):]
}

// CheckSession ssid 在黑名单里说明已经退出登录
func (h *RedisJWTHandler) CheckSession(ctx *gin.Context, ssid string) error {
	cnt, err := h.cmd.Exists(ctx, fmt.Sprintf("users:ssid:%s", ssid)).Result()
	if err != nil {
		return err
	}
	if cnt > 0 {
		return errors.New("用户已经退出登录")
	}
	return nil
}

func (h *RedisJWTHandler) ClearToken(ctx *gin.Context) error {
	ctx.Header("x-jwt-token", "")
	ctx.Header("x-refresh-token", "")
	uc, ok := ctx.MustGet("user").(ginx.UserClaims)
	if !ok {
		return errors.New("拿不到用户信息")
	}
	return h.cmd.Set(ctx, fmt.Sprintf("users:ssid:%s", uc.Ssid),
		"", h.rtExpiration).Err()
}
