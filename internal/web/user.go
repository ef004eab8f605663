package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"blog/internal/domain"
	"blog/internal/service"
	ijwt "blog/internal/web/jwt"
	"blog/pkg/ginx"
	"blog/pkg/logger"
)

var _ handler = (*UserHandler)(nil)

type UserHandler struct {
	svc     service.UserService
	roleSvc service.RoleService
	jwtHdl  ijwt.Handler
	l       logger.Logger
}

func NewUserHandler(svc service.UserService,
	roleSvc service.RoleService,
	jwtHdl ijwt.Handler, l logger.Logger) *UserHandler {
	return &UserHandler{
		svc:     svc,
		roleSvc: roleSvc,
		jwtHdl:  jwtHdl,
		l:       l,
	}
}

func (h *UserHandler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/users")
	g.POST("/signup", ginx.WrapReq[SignupReq](h.Signup))
	g.POST("/login", ginx.WrapReq[LoginReq](h.Login))
	g.POST("/logout", ginx.Wrap(h.Logout))
	g.POST("/refresh-token", h.RefreshToken)
	g.GET("/profile", ginx.WrapClaims(h.Profile))
	g.POST("/edit", ginx.WrapClaimsAndReq[EditReq](h.Edit))
}

type SignupReq struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginReq struct {
	// 用户名或者邮箱
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type EditReq struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Intro    string `json:"intro"`
	Website  string `json:"website"`
}

func (h *UserHandler) Signup(ctx *gin.Context, req SignupReq) (ginx.Result, error) {
	if req.Password != req.ConfirmPassword {
		return ginx.Result{Code: 4, Msg: "两次输入的密码不一致"}, nil
	}
	err := h.svc.Signup(ctx, domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, service.ErrUserDuplicate) {
		return ginx.Result{Code: 4, Msg: "用户名或者邮箱已被占用"}, nil
	}
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *UserHandler) Login(ctx *gin.Context, req LoginReq) (ginx.Result, error) {
	u, err := h.svc.Login(ctx, req.Account, req.Password)
	if errors.Is(err, service.ErrInvalidUserOrPassword) {
		return ginx.Result{Code: 4, Msg: "用户名或者密码不正确"}, nil
	}
	if errors.Is(err, service.ErrUserDisabled) {
		return ginx.Result{Code: 4, Msg: "用户已被禁用"}, nil
	}
	if err != nil {
		return systemError(), err
	}
	// 角色在签发令牌时一次性写进 claims，后续鉴权不回表
	roles, err := h.roleSvc.RoleNamesByUserId(ctx, u.Id)
	if err != nil {
		return systemError(), err
	}
	err = h.jwtHdl.SetLoginToken(ctx, u.Id, roles)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: toUserInfoVO(u)}, nil
}

func (h *UserHandler) Logout(ctx *gin.Context) (ginx.Result, error) {
	err := h.jwtHdl.ClearToken(ctx)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// RefreshToken 用刷新令牌换新的访问令牌
func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	tokenStr := h.jwtHdl.ExtractToken(ctx)
	var rc ijwt.RefreshClaims
	token, err := jwtv5.ParseWithClaims(tokenStr, &rc,
		func(token *jwtv5.Token) (interface{}, error) {
			return ijwt.RtKey, nil
		})
	if err != nil || token == nil || !token.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	err = h.jwtHdl.CheckSession(ctx, rc.Ssid)
	if err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	roles, err := h.roleSvc.RoleNamesByUserId(ctx, rc.Uid)
	if err != nil {
		ctx.JSON(http.StatusOK, systemError())
		return
	}
	err = h.jwtHdl.SetJWTToken(ctx, rc.Uid, rc.Ssid, roles)
	if err != nil {
		ctx.JSON(http.StatusOK, systemError())
		return
	}
	ctx.JSON(http.StatusOK, ginx.Result{Msg: "OK"})
}

func (h *UserHandler) Profile(ctx *gin.Context, uc ginx.UserClaims) (ginx.Result, error) {
	u, err := h.svc.Profile(ctx, uc.Uid)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: toUserInfoVO(u)}, nil
}

func (h *UserHandler) Edit(ctx *gin.Context, req EditReq, uc ginx.UserClaims) (ginx.Result, error) {
	err := h.svc.UpdateInfo(ctx, domain.User{
		Id:       uc.Uid,
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
		Intro:    req.Intro,
		Website:  req.Website,
	})
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}
