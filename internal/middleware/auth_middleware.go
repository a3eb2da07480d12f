package middleware

import (
	"net/http"
	"strings"

	"vidtube/internal/apperror"
	"vidtube/internal/config"
	"vidtube/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware 请求守卫：1、从cookie或Authorization头取出access token 2、验签和过期检查
// 3、从数据库加载账号（排除密码和refresh token）4、挂到context上供后续handler使用
// 凭证缺失、签名无效、账号不存在对外都是同一个401，避免预言机式的信息泄露
func AuthMiddleware(cfg *config.Config, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, cfg)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		user, loadErr := userRepo.FindPublicByID(userID)
		if loadErr != nil {
			_ = c.Error(apperror.New(http.StatusUnauthorized, "无效的授权令牌"))
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("currentUser", user)
		c.Next()
	}
}

// OptionalAuth 可选守卫：带了有效凭证就挂上用户，没带或无效则作为匿名访问者放行
// 公开的视频读取接口用它来识别所有者（未发布视频）和观看历史归属
func OptionalAuth(cfg *config.Config, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, cfg)
		if err == nil {
			if user, loadErr := userRepo.FindPublicByID(userID); loadErr == nil {
				c.Set("userID", user.ID)
				c.Set("currentUser", user)
			}
		}
		c.Next()
	}
}

// authenticate 提取并验证access token，返回凭证中的用户ID
func authenticate(c *gin.Context, cfg *config.Config) (uint64, *apperror.ApiError) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return 0, apperror.New(http.StatusUnauthorized, "请求未包含授权令牌")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.AccessTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, apperror.New(http.StatusUnauthorized, "无效的授权令牌")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperror.New(http.StatusUnauthorized, "无效的授权令牌")
	}
	// MapClaims里的数字会被解析成float64
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, apperror.New(http.StatusUnauthorized, "无效的授权令牌")
	}
	return uint64(idFloat), nil
}

// extractToken cookie优先，其次是"Bearer [token]"格式的Authorization头
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
