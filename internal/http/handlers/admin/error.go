package admin

import (
	"errors"

	handlershared "github.com/catalogkit/internal/http/handlers/shared"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondServiceError 将服务层错误映射为响应码与消息键
func respondServiceError(c *gin.Context, err error, fallbackKey string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		handlershared.RespondValidation(c, validationErr.Errors(), validationErr.Warnings())
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrComboNotFound):
		respondError(c, response.CodeNotFound, "error.combo_not_found", nil)
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrProductInUse):
		respondError(c, response.CodeConflict, "error.product_in_use", nil)
	case errors.Is(err, service.ErrReferenceTypeInvalid):
		respondError(c, response.CodeBadRequest, "error.reference_type_invalid", nil)
	case errors.Is(err, service.ErrSaveFailed):
		respondError(c, response.CodeInternal, "error.save_failed", nil)
	case errors.Is(err, service.ErrDeleteFailed):
		respondError(c, response.CodeInternal, "error.delete_failed", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// respondPayloadInvalid 表单无法解析（字段缺失、类型错误）
func respondPayloadInvalid(c *gin.Context, err error) {
	requestLog(c).Infow("submit_payload_invalid", "path", c.FullPath(), "error", err)
	respondError(c, response.CodeBadRequest, "error.payload_invalid", nil)
}
