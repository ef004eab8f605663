package web

import (
	"github.com/gin-gonic/gin"

	"blog/internal/domain"
	"blog/internal/service"
	"blog/pkg/ginx"
)

var _ handler = (*WebConfigHandler)(nil)

type WebConfigHandler struct {
	svc service.WebConfigService
}

func NewWebConfigHandler(svc service.WebConfigService) *WebConfigHandler {
	return &WebConfigHandler{
		svc: svc,
	}
}

func (h *WebConfigHandler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/admin/web-configs")
	g.GET("/:key", ginx.Wrap(h.Get))
	g.PUT("", ginx.WrapReq[WebConfigSaveReq](h.Save))
}

type WebConfigSaveReq struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (h *WebConfigHandler) Get(ctx *gin.Context) (ginx.Result, error) {
	cfg, err := h.svc.Get(ctx, ctx.Param("key"))
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: cfg.Value}, nil
}

func (h *WebConfigHandler) Save(ctx *gin.Context, req WebConfigSaveReq) (ginx.Result, error) {
	err := h.svc.Save(ctx, domain.WebConfig{
		Key:   req.Key,
		Value: req.Value,
	})
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}
