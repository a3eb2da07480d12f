package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/apperror"
	"vidtube/internal/model"

	"github.com/gin-gonic/gin"
)

// Envelope 是所有接口统一的响应包装
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// respond 发送成功响应，HTTP状态码和envelope里的statusCode保持一致
func respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// fail 把错误交给终端错误中间件，自己不写任何响应
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// currentUserID 读取请求守卫挂在context上的用户ID
// 守卫保证有值，这里的检查只是防程序员误把handler注册到了未受保护的路由上
func currentUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get("userID")
	if !exists {
		fail(c, apperror.New(http.StatusUnauthorized, "用户未认证"))
		return 0, false
	}
	userID, ok := value.(uint64)
	if !ok {
		fail(c, apperror.New(http.StatusUnauthorized, "用户未认证"))
		return 0, false
	}
	return userID, true
}

// currentUser 读取守卫挂上的完整账号（公开投影）
func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("currentUser")
	if !exists {
		fail(c, apperror.New(http.StatusUnauthorized, "用户未认证"))
		return nil, false
	}
	user, ok := value.(*model.User)
	if !ok {
		fail(c, apperror.New(http.StatusUnauthorized, "用户未认证"))
		return nil, false
	}
	return user, true
}

// optionalUserID 可选守卫下的访问者ID，匿名时为0
func optionalUserID(c *gin.Context) uint64 {
	if value, exists := c.Get("userID"); exists {
		if userID, ok := value.(uint64); ok {
			return userID
		}
	}
	return 0
}

// parseIDParam 解析路径里的数字ID，非法时返回400错误
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.New(http.StatusBadRequest, "无效的资源ID")
	}
	return id, nil
}
