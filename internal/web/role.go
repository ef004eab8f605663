package web

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog/internal/domain"
	"blog/internal/repository"
	"blog/internal/service"
	"blog/internal/web/middleware"
	"blog/pkg/ginx"
)

var _ handler = (*RoleHandler)(nil)

type RoleHandler struct {
	svc service.RoleService
}

func NewRoleHandler(svc service.RoleService) *RoleHandler {
	return &RoleHandler{
		svc: svc,
	}
}

func (h *RoleHandler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/admin/roles")
	g.GET("/digest", ginx.Wrap(h.ListDigest))
	g.GET("", ginx.Wrap(h.PageSearch))
	g.PUT("/is-disabled", ginx.WrapReq[RoleIsDisabledReq](h.UpdateIsDisabled))
	g.POST("", ginx.WrapReq[RoleSaveReq](h.Save))
	g.DELETE("", ginx.WrapReq[RoleDeleteReq](h.Delete))

	server.GET("/admin/resources/:id/roles", ginx.Wrap(h.ListRoleIdsByResourceId))
}

type RoleIsDisabledReq struct {
	Id         int64 `json:"id" binding:"required"`
	IsDisabled bool  `json:"isDisabled"`
}

type RoleSaveReq struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Label       string  `json:"label" binding:"required"`
	ResourceIds []int64 `json:"resourceIds"`
}

type RoleDeleteReq struct {
	Ids []int64 `json:"ids" binding:"required"`
}

func (h *RoleHandler) ListDigest(ctx *gin.Context) (ginx.Result, error) {
	roles, err := h.svc.ListDigest(ctx)
	if err != nil {
		return systemError(), err
	}
	res := make([]RoleDigestVO, 0, len(roles))
	for _, role := range roles {
		res = append(res, toRoleDigestVO(role))
	}
	return ginx.Result{Data: res}, nil
}

func (h *RoleHandler) PageSearch(ctx *gin.Context) (ginx.Result, error) {
	page := middleware.Pageable(ctx)
	roles, total, err := h.svc.PageSearch(ctx, page, ctx.Query("keywords"))
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	list := make([]RoleVO, 0, len(roles))
	for _, role := range roles {
		list = append(list, toRoleVO(role))
	}
	return ginx.Result{Data: PageVO[RoleVO]{List: list, Total: total}}, nil
}

func (h *RoleHandler) UpdateIsDisabled(ctx *gin.Context, req RoleIsDisabledReq) (ginx.Result, error) {
	err := h.svc.UpdateIsDisabled(ctx, req.Id, req.IsDisabled)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *RoleHandler) Save(ctx *gin.Context, req RoleSaveReq) (ginx.Result, error) {
	err := h.svc.Save(ctx, domain.Role{
		Id:          req.Id,
		Name:        req.Name,
		Label:       req.Label,
		ResourceIds: req.ResourceIds,
	})
	if errors.Is(err, repository.ErrRoleNotFound) {
		return ginx.Result{Code: 4, Msg: "角色不存在"}, nil
	}
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *RoleHandler) Delete(ctx *gin.Context, req RoleDeleteReq) (ginx.Result, error) {
	err := h.svc.Delete(ctx, req.Ids)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *RoleHandler) ListRoleIdsByResourceId(ctx *gin.Context) (ginx.Result, error) {
	resourceId, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return paramError(), nil
	}
	ids, err := h.svc.ListRoleIdsByResourceId(ctx, resourceId)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: ids}, nil
}
