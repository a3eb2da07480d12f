package middleware

import (
	"net/http"
	"runtime/debug"

	"vidtube/internal/apperror"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 终端错误转换器：全部业务错误的唯一出口
// handler只负责把错误塞进c.Errors并中止，响应的形状在这里统一决定：
// 带状态码的ApiError按其状态码返回，其余一律500；非生产环境附带堆栈方便排查
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		lastErr := c.Errors.Last()
		if lastErr == nil || c.Writer.Written() {
			return
		}

		statusCode := http.StatusInternalServerError
		message := "服务器内部错误"
		if apiErr := apperror.As(lastErr.Err); apiErr != nil {
			statusCode = apiErr.StatusCode
			message = apiErr.Message
		} else {
			// 未被业务层打标的错误，只记日志不外泄细节
			logger.Log.WithError(lastErr.Err).
				WithField("path", c.Request.URL.Path).
				Error("未处理的内部错误")
		}

		body := gin.H{
			"statusCode": statusCode,
			"data":       nil,
			"message":    message,
			"success":    false,
		}
		if !production {
			body["stack"] = lastErr.Err.Error() + "\n" + string(debug.Stack())
		}

		c.JSON(statusCode, body)
	}
}
