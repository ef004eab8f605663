package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog/internal/domain"
	"blog/internal/repository"
	"blog/internal/service"
	"blog/internal/web/middleware"
	"blog/pkg/ginx"
	"blog/pkg/logger"
)

var _ handler = (*ArticleHandler)(nil)

type ArticleHandler struct {
	svc service.ArticleService
	l   logger.Logger
}

func NewArticleHandler(svc service.ArticleService, l logger.Logger) *ArticleHandler {
	return &ArticleHandler{
		svc: svc,
		l:   l,
	}
}

func (h *ArticleHandler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/articles")
	g.GET("/search", ginx.Wrap(h.ListSearch))
	g.GET("/archives", ginx.Wrap(h.PageArchives))
	g.GET("/categories/:id", ginx.Wrap(h.PagePreviewByCategory))
	g.GET("/tags", ginx.Wrap(h.PagePreviewByTags))
	g.GET("/:id", ginx.Wrap(h.Detail))
	g.GET("", ginx.Wrap(h.PagePublic))
	g.POST("/:id/like", ginx.WrapClaimsAndReq[LikeReq](h.Like))

	ag := server.Group("/admin/articles")
	ag.GET("/:id", ginx.Wrap(h.GetBackground))
	ag.GET("", ginx.WrapReq[BackgroundListReq](h.PageBackground))
	ag.POST("", ginx.WrapClaimsAndReq[ArticleSaveReq](h.Save))
	ag.POST("/images", h.UploadImage)
	ag.PUT("/top", ginx.WrapReq[ArticleTopReq](h.UpdateIsTop))
	ag.PUT("/is-deleted", ginx.WrapReq[ArticleIsDeletedReq](h.UpdateIsDeleted))
	ag.DELETE("", ginx.WrapReq[ArticleDeleteReq](h.Delete))

	server.GET("/admin/tags", ginx.Wrap(h.PageSearchTags))
}

type LikeReq struct {
	Like bool `json:"like"`
}

type BackgroundListReq struct {
	CategoryId int64  `form:"categoryId"`
	TagId      int64  `form:"tagId"`
	Status     *uint8 `form:"status"`
	Type       *uint8 `form:"type"`
	IsDeleted  *bool  `form:"isDeleted"`
	Keywords   string `form:"keywords"`
}

type ArticleSaveReq struct {
	Id           int64    `json:"id"`
	Title        string   `json:"title" binding:"required"`
	Content      string   `json:"content" binding:"required"`
	Cover        string   `json:"cover"`
	Type         uint8    `json:"type"`
	Status       uint8    `json:"status"`
	IsTop        bool     `json:"isTop"`
	CategoryName string   `json:"categoryName" binding:"required"`
	TagNames     []string `json:"tagNames"`
}

type ArticleTopReq struct {
	Id    int64 `json:"id" binding:"required"`
	IsTop bool  `json:"isTop"`
}

type ArticleIsDeletedReq struct {
	Id        int64 `json:"id" binding:"required"`
	IsDeleted bool  `json:"isDeleted"`
}

type ArticleDeleteReq struct {
	Ids []int64 `json:"ids" binding:"required"`
}

func (h *ArticleHandler) ListSearch(ctx *gin.Context) (ginx.Result, error) {
	arts, err := h.svc.ListSearch(ctx, ctx.Query("keywords"))
	if err != nil {
		return systemError(), err
	}
	res := make([]ArticleSearchVO, 0, len(arts))
	for _, art := range arts {
		res = append(res, toSearchVO(art))
	}
	return ginx.Result{Data: res}, nil
}

func (h *ArticleHandler) PageArchives(ctx *gin.Context) (ginx.Result, error) {
	page := middleware.Pageable(ctx)
	arts, total, err := h.svc.PageArchives(ctx, page)
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	list := make([]ArchiveVO, 0, len(arts))
	for _, art := range arts {
		list = append(list, toArchiveVO(art))
	}
	return ginx.Result{Data: PageVO[ArchiveVO]{List: list, Total: total}}, nil
}

func (h *ArticleHandler) Detail(ctx *gin.Context) (ginx.Result, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return paramError(), nil
	}
	// 详情页不要求登录，取得到用户就带上
	var uid int64
	if val, ok := ctx.Get("user"); ok {
		if uc, ok := val.(ginx.UserClaims); ok {
			uid = uc.Uid
		}
	}
	detail, err := h.svc.Get(ctx, uid, id)
	if err != nil {
		return ginx.Result{Code: 4, Msg: err.Error()}, nil
	}
	return ginx.Result{Data: toDetailVO(detail)}, nil
}

func (h *ArticleHandler) PagePublic(ctx *gin.Context) (ginx.Result, error) {
	page := middleware.Pageable(ctx)
	isTop := ctx.Query("isTop") == "true"
	arts, total, err := h.svc.PagePublic(ctx, page, isTop)
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	list := make([]ArticleCardVO, 0, len(arts))
	for _, art := range arts {
		list = append(list, toCardVO(art))
	}
	return ginx.Result{Data: PageVO[ArticleCardVO]{List: list, Total: total}}, nil
}

func (h *ArticleHandler) PagePreviewByCategory(ctx *gin.Context) (ginx.Result, error) {
	categoryId, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return paramError(), nil
	}
	page := middleware.Pageable(ctx)
	arts, total, err := h.svc.PagePreviewByCategory(ctx, categoryId, page)
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: PageVO[ArticlePreviewVO]{
		List:  toPreviewVOs(arts),
		Total: total,
	}}, nil
}

func (h *ArticleHandler) PagePreviewByTags(ctx *gin.Context) (ginx.Result, error) {
	tagIds, err := parseIds(ctx.QueryArray("tagId"))
	if err != nil || len(tagIds) == 0 {
		return paramError(), nil
	}
	page := middleware.Pageable(ctx)
	arts, total, err := h.svc.PagePreviewByTags(ctx, tagIds, page)
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: PageVO[ArticlePreviewVO]{
		List:  toPreviewVOs(arts),
		Total: total,
	}}, nil
}

func (h *ArticleHandler) Like(ctx *gin.Context, req LikeReq, uc ginx.UserClaims) (ginx.Result, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return paramError(), nil
	}
	effective, err := h.svc.Like(ctx, uc.Uid, id, req.Like)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK", Data: effective}, nil
}

func (h *ArticleHandler) GetBackground(ctx *gin.Context) (ginx.Result, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return paramError(), nil
	}
	art, err := h.svc.GetBackground(ctx, id)
	if err != nil {
		return ginx.Result{Code: 4, Msg: err.Error()}, nil
	}
	return ginx.Result{Data: toAdminVO(art)}, nil
}

func (h *ArticleHandler) PageBackground(ctx *gin.Context, req BackgroundListReq) (ginx.Result, error) {
	page := middleware.Pageable(ctx)
	arts, total, err := h.svc.PageBackground(ctx, page, domain.ArticleQuery{
		CategoryId: req.CategoryId,
		TagId:      req.TagId,
		Status:     req.Status,
		Type:       req.Type,
		IsDeleted:  req.IsDeleted,
		Keywords:   req.Keywords,
	})
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	list := make([]ArticleBackgroundVO, 0, len(arts))
	for _, art := range arts {
		list = append(list, toBackgroundVO(art))
	}
	return ginx.Result{Data: PageVO[ArticleBackgroundVO]{List: list, Total: total}}, nil
}

func (h *ArticleHandler) Save(ctx *gin.Context, req ArticleSaveReq, uc ginx.UserClaims) (ginx.Result, error) {
	id, err := h.svc.Save(ctx, domain.Article{
		Id:      req.Id,
		Title:   req.Title,
		Content: req.Content,
		ContentDigest: domain.Article{
			Content: req.Content,
		}.Abstract(),
		Cover:  req.Cover,
		Type:   req.Type,
		Status: domain.ArticleStatus(req.Status),
		IsTop:  req.IsTop,
		UserId: uc.Uid,
	}, req.CategoryName, req.TagNames)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: id}, nil
}

// UploadImage 表单上传，成功返回外链地址
func (h *ArticleHandler) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusOK, paramError())
		return
	}
	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusOK, systemError())
		return
	}
	defer src.Close()
	url, err := h.svc.UploadImage(ctx, file.Filename, src)
	if err != nil {
		h.l.Error("上传文章图片失败", logger.Error(err))
		ctx.JSON(http.StatusOK, systemError())
		return
	}
	ctx.JSON(http.StatusOK, ginx.Result{Data: url})
}

func (h *ArticleHandler) UpdateIsTop(ctx *gin.Context, req ArticleTopReq) (ginx.Result, error) {
	err := h.svc.UpdateIsTop(ctx, req.Id, req.IsTop)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *ArticleHandler) UpdateIsDeleted(ctx *gin.Context, req ArticleIsDeletedReq) (ginx.Result, error) {
	err := h.svc.UpdateIsDeleted(ctx, req.Id, req.IsDeleted)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *ArticleHandler) Delete(ctx *gin.Context, req ArticleDeleteReq) (ginx.Result, error) {
	affected, err := h.svc.Delete(ctx, req.Ids)
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: affected}, nil
}

func (h *ArticleHandler) PageSearchTags(ctx *gin.Context) (ginx.Result, error) {
	page := middleware.Pageable(ctx)
	tags, counts, total, err := h.svc.PageSearchTags(ctx, ctx.Query("keywords"), page)
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return pageOutOfRange(), nil
	}
	if err != nil {
		return systemError(), err
	}
	return ginx.Result{Data: PageVO[TagSearchVO]{
		List:  toTagSearchVOs(tags, counts),
		Total: total,
	}}, nil
}

func toPreviewVOs(arts []domain.Article) []ArticlePreviewVO {
	res := make([]ArticlePreviewVO, 0, len(arts))
	for _, art := range arts {
		res = append(res, toPreviewVO(art))
	}
	return res
}

func parseIds(strs []string) ([]int64, error) {
	ids := make([]int64, 0, len(strs))
	for _, s := range strs {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func systemError() ginx.Result {
	return ginx.Result{Code: 5, Msg: "系统错误"}
}

func paramError() ginx.Result {
	return ginx.Result{Code: 4, Msg: "参数错误"}
}

func pageOutOfRange() ginx.Result {
	return ginx.Result{Code: 4, Msg: "页码超出范围"}
}
