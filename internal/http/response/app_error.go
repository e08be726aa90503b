package response

// AppError 统一错误包装，Key 为 i18n 消息键
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, key, message string, err error) *AppError {
	return &AppError{Code: code, Key: key, Message: message, Err: err}
}
