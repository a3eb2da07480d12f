package apperror

import "errors"

// ApiError 是全部业务错误的统一载体：带HTTP状态码的错误，由终端错误中间件统一转换成响应
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return e.Message
}

// New 创建一个带状态码的业务错误
func New(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

// As 从错误链中提取ApiError，提取不到返回nil
func As(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
