package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeValidation      = 422
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
