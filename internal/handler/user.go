package handler

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"vidtube/internal/apperror"
	"vidtube/internal/config"
	"vidtube/internal/dto"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	GetMe(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCover(c *gin.Context)
	GetChannelProfile(c *gin.Context)
	GetWatchHistory(c *gin.Context)
}

type userHandler struct {
	cfg         *config.Config
	UserService service.UserService
}

func NewUserHandler(cfg *config.Config, userService service.UserService) UserHandler {
	return &userHandler{cfg: cfg, UserService: userService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// Register 注册：multipart表单，字段加必传的avatar和可选的coverImage
// 文件先暂存到本地，再由媒体出口适配器上传
func (h *userHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	fullName := c.PostForm("fullName")
	password := c.PostForm("password")

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "头像文件为必传项"))
		return
	}
	avatarPath, err := stageUpload(c, avatarFile)
	if err != nil {
		fail(c, err)
		return
	}

	coverPath := ""
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		coverPath, err = stageUpload(c, coverFile)
		if err != nil {
			fail(c, err)
			return
		}
	}

	logCtx := logger.Log.WithField("username", username)
	logCtx.Info("开始处理用户注册请求")

	user, pair, err := h.UserService.Register(c.Request.Context(), service.RegisterInput{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   password,
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		logCtx.WithError(err).Error("用户注册业务逻辑处理失败")
		fail(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户注册成功")

	setAuthCookies(c, h.cfg, pair)
	respond(c, http.StatusCreated, dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
	}, "注册成功")
}

// Login 登录成功时设置两个http-only cookie，并在body里附带access token
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	logCtx := logger.Log.WithField("email", req.Email)
	logCtx.Info("开始处理用户登录请求")

	user, pair, err := h.UserService.Login(req.Email, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("用户登录失败")
		fail(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户登录成功")

	setAuthCookies(c, h.cfg, pair)
	respond(c, http.StatusOK, dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
	}, "登录成功")
}

func (h *userHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.UserService.Logout(userID); err != nil {
		fail(c, err)
		return
	}

	clearAuthCookies(c, h.cfg)
	respond(c, http.StatusOK, nil, "已退出登录")
}

func (h *userHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), "成功获取用户信息")
}

// RefreshToken 刷新会话：cookie优先，body里的refreshToken字段兜底
func (h *userHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie("refreshToken")
	if refreshToken == "" {
		var req RefreshRequest
		_ = c.ShouldBindJSON(&req)
		refreshToken = req.RefreshToken
	}

	user, pair, err := h.UserService.Refresh(refreshToken)
	if err != nil {
		fail(c, err)
		return
	}

	logger.Log.WithField("user_id", user.ID).Info("会话刷新成功")

	setAuthCookies(c, h.cfg, pair)
	respond(c, http.StatusOK, dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
	}, "会话刷新成功")
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	if err := h.UserService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "密码修改成功")
}

func (h *userHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	user, err := h.UserService.UpdateAccount(userID, req.FullName, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), "账号信息更新成功")
}

func (h *userHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", func(userID uint64, path string) error {
		user, err := h.UserService.UpdateAvatar(c.Request.Context(), userID, path)
		if err != nil {
			return err
		}
		respond(c, http.StatusOK, dto.ToUserResponse(user), "头像更新成功")
		return nil
	})
}

func (h *userHandler) UpdateCover(c *gin.Context) {
	h.updateImage(c, "coverImage", func(userID uint64, path string) error {
		user, err := h.UserService.UpdateCover(c.Request.Context(), userID, path)
		if err != nil {
			return err
		}
		respond(c, http.StatusOK, dto.ToUserResponse(user), "封面更新成功")
		return nil
	})
}

// updateImage 头像和封面共用的multipart处理流程
func (h *userHandler) updateImage(c *gin.Context, field string, apply func(userID uint64, path string) error) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile(field)
	if err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "图片文件为必传项"))
		return
	}
	path, err := stageUpload(c, file)
	if err != nil {
		fail(c, err)
		return
	}

	if err := apply(userID, path); err != nil {
		fail(c, err)
	}
}

func (h *userHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.UserService.GetChannelProfile(username, optionalUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "成功获取频道信息")
}

func (h *userHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	video, err := h.UserService.GetWatchHistory(userID)
	if err != nil {
		fail(c, err)
		return
	}
	if video == nil {
		respond(c, http.StatusOK, nil, "暂无观看历史")
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponse(video), "成功获取观看历史")
}

// setAuthCookies 按7天窗口写入两个same-site严格的http-only cookie
func setAuthCookies(c *gin.Context, cfg *config.Config, pair *service.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	maxAge := int(cfg.RefreshTokenTTL.Seconds())
	c.SetCookie("accessToken", pair.AccessToken, maxAge, "/", "", cfg.IsProduction(), true)
	c.SetCookie("refreshToken", pair.RefreshToken, maxAge, "/", "", cfg.IsProduction(), true)
}

func clearAuthCookies(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("accessToken", "", -1, "/", "", cfg.IsProduction(), true)
	c.SetCookie("refreshToken", "", -1, "/", "", cfg.IsProduction(), true)
}

// stageUpload 把multipart文件暂存到临时目录，返回本地路径
// 文件名用uuid重新生成，只保留扩展名
func stageUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", apperror.New(http.StatusInternalServerError, "文件暂存失败")
	}
	return path, nil
}
