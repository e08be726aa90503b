package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/catalogkit/internal/http/handlers/shared"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReferences 查询选择器参考数据（仅启用项）
func (h *Handler) ListReferences(c *gin.Context) {
	page, pageSize := h.referencePagination(c)
	result, err := h.ReferenceService.List(c.Request.Context(), service.ReferenceQuery{
		Kind:     strings.TrimSpace(c.Param("kind")),
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondServiceError(c, err, "error.list_failed")
		return
	}
	response.SuccessWithPage(c, result.Items, response.BuildPagination(page, pageSize, result.Total))
}

func (h *Handler) referencePagination(c *gin.Context) (int, int) {
	defaultSize, maxSize := handlershared.DefaultPageSize, handlershared.MaxPageSize
	if h.Config != nil {
		if h.Config.Reference.PageSize > 0 {
			defaultSize = h.Config.Reference.PageSize
		}
		if h.Config.Reference.MaxPageSize > 0 {
			maxSize = h.Config.Reference.MaxPageSize
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
