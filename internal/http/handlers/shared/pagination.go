package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize 未指定 page_size 时的默认值
const DefaultPageSize = 20

// MaxPageSize page_size 上限
const MaxPageSize = 200

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// QueryPagination 读取 ?page=&page_size=。
func QueryPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	return NormalizePagination(page, pageSize)
}
