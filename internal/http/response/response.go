package response

import (
	"net/http"

	"github.com/catalogkit/internal/constants"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构；success 为 false 即业务失败，与 HTTP 状态无关
type Response struct {
	Success    bool              `json:"success"`
	Code       int               `json:"code,omitempty"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Warnings   map[string]string `json:"warnings,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination 构造分页信息
func BuildPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessWithMsg 成功响应（自定义消息，附带提示）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}, warnings map[string]string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: msg, Data: data, Warnings: warnings})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: &pagination})
}

// Error 业务失败响应
func Error(c *gin.Context, code int, msg string) {
	c.JSON(httpStatus(code), Response{
		Success:   false,
		Code:      code,
		Message:   msg,
		RequestID: requestID(c),
	})
}

// ValidationFailed 校验失败响应，errors 以展示路径为键
func ValidationFailed(c *gin.Context, msg string, errors, warnings map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success:   false,
		Code:      CodeValidation,
		Message:   msg,
		Errors:    errors,
		Warnings:  warnings,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func httpStatus(code int) int {
	switch code {
	case CodeBadRequest, CodeUnauthorized, CodeNotFound, CodeTooManyRequests, CodeInternal:
		return code
	case CodeValidation:
		return http.StatusUnprocessableEntity
	}
	// 其它业务失败（如 CodeConflict）走 200 + success:false
	return http.StatusOK
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
