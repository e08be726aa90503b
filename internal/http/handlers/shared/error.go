package shared

import (
	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/i18n"
	"github.com/catalogkit/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	appErr := response.WrapError(code, key, i18n.T(locale, key), err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondValidation 返回校验失败响应，错误与提示按请求语言渲染。
func RespondValidation(c *gin.Context, errors, warnings map[string]string) {
	locale := i18n.ResolveLocale(c)
	RequestLog(c).Infow("submit_validation_failed", "error_count", len(errors))
	response.ValidationFailed(c,
		i18n.T(locale, "error.validation_failed"),
		i18n.TranslateMap(locale, errors),
		i18n.TranslateMap(locale, warnings),
	)
}

// RespondSaved 返回保存成功响应，附带非阻塞提示。
func RespondSaved(c *gin.Context, data interface{}, warnings map[string]string) {
	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "success.saved"), data, i18n.TranslateMap(locale, warnings))
}
