package web

import "github.com/gin-gonic/gin"

type handler interface {
	RegisterRoutes(server *gin.Engine)
}

// PageVO 分页结果的统一信封
type PageVO[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
}
