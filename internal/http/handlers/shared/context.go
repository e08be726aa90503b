package shared

import (
	"strconv"
	"strings"

	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAdminID 读取 JWT 中间件写入的管理员 ID。
func GetAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyAdminID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return 0, false
	}
}

// ParseIDParam 解析路径参数中的 ID。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
