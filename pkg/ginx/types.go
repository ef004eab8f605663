package ginx

import (
	"github.com/golang-jwt/jwt/v5"
)

type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// UserClaims 访问令牌里的用户信息。
// Roles 在登录时一次性写入，鉴权不回表；
// Rid 是可选的资源 id，只有带资源上下文的令牌才有
type UserClaims struct {
	jwt.RegisteredClaims
	Uid   int64
	Ssid  string
	Roles []string
	Type  string
	Rid   int64
}
