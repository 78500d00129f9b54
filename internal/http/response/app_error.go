package response

// AppError 业务错误，携带响应码与展示给前端的消息
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap 暴露底层错误，供 errors.Is 判断
func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 把底层错误包装为业务错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
