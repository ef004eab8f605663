package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog/internal/domain"
	"blog/pkg/ginx"
)

// 分页参数在请求作用域里的 key
const pageableKey = "pageable"

// PageableMiddlewareBuilder 从查询参数解析分页条件。
// 没带 page 参数的请求什么都不发布，
// 发布的值随请求作用域一起销毁，不需要显式清理
type PageableMiddlewareBuilder struct{}

func NewPageableMiddlewareBuilder() *PageableMiddlewareBuilder {
	return &PageableMiddlewareBuilder{}
}

func (b *PageableMiddlewareBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pageStr := ctx.Query("page")
		if pageStr == "" {
			return
		}
		num, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || num <= 0 {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, ginx.Result{
				Code: 4,
				Msg:  "分页参数错误",
			})
			return
		}
		size := domain.DefaultPageSize
		if sizeStr := ctx.Query("size"); sizeStr != "" {
			size, err = strconv.ParseInt(sizeStr, 10, 64)
			if err != nil || size <= 0 {
				ctx.AbortWithStatusJSON(http.StatusBadRequest, ginx.Result{
					Code: 4,
					Msg:  "分页参数错误",
				})
				return
			}
		}
		ctx.Set(pageableKey, domain.Page{
			Num:  num,
			Size: size,
		})
	}
}

// Pageable 取出请求上的分页条件，没有时返回第一页默认页长
func Pageable(ctx *gin.Context) domain.Page {
	val, ok := ctx.Get(pageableKey)
	if !ok {
		return domain.Page{Num: 1, Size: domain.DefaultPageSize}
	}
	page, ok := val.(domain.Page)
	if !ok {
		return domain.Page{Num: 1, Size: domain.DefaultPageSize}
	}
	return page
}
