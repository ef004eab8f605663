package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"blog/internal/domain"
)

func pageableServer() (*gin.Engine, *struct {
	published bool
	page      domain.Page
}) {
	gin.SetMode(gin.TestMode)
	res := &struct {
		published bool
		page      domain.Page
	}{}
	server := gin.New()
	server.Use(NewPageableMiddlewareBuilder().Build())
	server.GET("/list", func(ctx *gin.Context) {
		_, res.published = ctx.Get(pageableKey)
		res.page = Pageable(ctx)
		ctx.Status(http.StatusOK)
	})
	return server, res
}

func TestPageableMiddleware(t *testing.T) {
	t.Run("没带 page 什么都不发布", func(t *testing.T) {
		server, res := pageableServer()
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/list", nil)
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.False(t, res.published)
		// 取值方兜底到第一页默认页长
		assert.Equal(t, domain.Page{Num: 1, Size: 10}, res.page)
	})
	t.Run("只带 page 用默认页长", func(t *testing.T) {
		server, res := pageableServer()
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/list?page=2", nil)
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, res.published)
		assert.Equal(t, domain.Page{Num: 2, Size: 10}, res.page)
	})
	t.Run("page 和 size 都带", func(t *testing.T) {
		server, res := pageableServer()
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/list?page=3&size=20", nil)
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, res.published)
		assert.Equal(t, domain.Page{Num: 3, Size: 20}, res.page)
	})
	t.Run("page 不是数字返回 400", func(t *testing.T) {
		server, res := pageableServer()
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/list?page=abc", nil)
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, res.published)
	})
	t.Run("size 非法返回 400", func(t *testing.T) {
		server, res := pageableServer()
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/list?page=1&size=-1", nil)
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, res.published)
	})
}
