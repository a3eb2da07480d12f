package service

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"vidtube/internal/apperror"
	"vidtube/internal/config"
	"vidtube/internal/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// TokenPair 一次签发的两个凭证：短期access token和长期refresh token
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput 注册所需的全部字段，头像已由handler暂存到本地
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	AvatarPath string
	CoverPath  string // 可选，为空表示未上传
}

// 用户服务：注册、登录、会话签发与轮换、账号维护、频道主页、观看历史
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, *TokenPair, error)
	Login(email, password string) (*model.User, *TokenPair, error)
	Logout(userID uint64) error
	// Refresh 校验refresh token并与账号上持久化的单槽位比对，通过后轮换两个凭证
	Refresh(refreshToken string) (*model.User, *TokenPair, error)
	ChangePassword(userID uint64, oldPassword, newPassword string) error
	UpdateAccount(userID uint64, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error)
	UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error)
	GetChannelProfile(username string, viewerID uint64) (*dto.ChannelProfileResponse, error)
	// GetWatchHistory 返回最近观看的视频，没有历史时返回(nil, nil)
	GetWatchHistory(userID uint64) (*model.Video, error)
}

type userService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	uploader  storage.Uploader
}

func NewUserService(cfg *config.Config, userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository, uploader storage.Uploader) UserService {
	return &userService{
		cfg:       cfg,
		userRepo:  userRepo,
		videoRepo: videoRepo,
		subRepo:   subRepo,
		uploader:  uploader,
	}
}

// Register 注册：1、规范化并校验输入 2、用户名/邮箱查重 3、上传头像和封面 4、bcrypt加密入库 5、签发会话
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, *TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, nil, apperror.New(http.StatusBadRequest, "所有字段均为必填")
	}
	if !emailPattern.MatchString(email) {
		return nil, nil, apperror.New(http.StatusBadRequest, "邮箱格式不正确")
	}

	if _, err := s.userRepo.FindByUsernameOrEmail(username, email); err == nil {
		return nil, nil, apperror.New(http.StatusConflict, "用户名或邮箱已被注册")
	} else if !isNotFoundErr(err) {
		return nil, nil, err
	}

	avatarURL, err := s.uploader.SaveLocalFile(ctx, input.AvatarPath)
	if err != nil {
		return nil, nil, apperror.New(http.StatusInternalServerError, "头像上传失败")
	}

	coverURL := ""
	if input.CoverPath != "" {
		coverURL, err = s.uploader.SaveLocalFile(ctx, input.CoverPath)
		if err != nil {
			return nil, nil, apperror.New(http.StatusInternalServerError, "封面上传失败")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	newUser := &model.User{
		Username:  username,
		Email:     email,
		FullName:  fullName,
		Password:  string(hashedPassword),
		AvatarURL: avatarURL,
		CoverURL:  coverURL,
	}

	if err := s.userRepo.Create(newUser); err != nil {
		if isDuplicateKeyErr(err) {
			// 查重和插入之间被别人抢先了，按冲突处理
			return nil, nil, apperror.New(http.StatusConflict, "用户名或邮箱已被注册")
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(newUser)
	if err != nil {
		return nil, nil, err
	}
	return newUser, pair, nil
}

// Login 登录：1、按邮箱找用户 2、bcrypt比对 3、签发并持久化会话
// 用户不存在和密码错误对外是同一个401，避免账号探测
func (s *userService) Login(email, password string) (*model.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, apperror.New(http.StatusBadRequest, "邮箱和密码均为必填")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, nil, apperror.New(http.StatusUnauthorized, "邮箱或密码错误")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.New(http.StatusUnauthorized, "邮箱或密码错误")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout 清空账号上的refresh token槽位，旧的refresh token随即失效
func (s *userService) Logout(userID uint64) error {
	return s.userRepo.UpdateRefreshToken(userID, "")
}

// Refresh 刷新会话：1、验签和过期检查 2、与持久化槽位比对（不一致说明被顶号或重放）3、轮换两个凭证
// 任何一步失败都是同样的401，不区分“过期”和“被篡改”
func (s *userService) Refresh(refreshToken string) (*model.User, *TokenPair, error) {
	unauthorized := apperror.New(http.StatusUnauthorized, "登录状态已失效，请重新登录")
	if refreshToken == "" {
		return nil, nil, unauthorized
	}

	userID, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, unauthorized
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, unauthorized
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, nil, unauthorized
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ChangePassword 先验证旧密码，再写入新哈希
func (s *userService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return apperror.New(http.StatusBadRequest, "新旧密码均为必填")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperror.New(http.StatusUnauthorized, "旧密码不正确")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(userID, string(hashed))
}

func (s *userService) UpdateAccount(userID uint64, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, apperror.New(http.StatusBadRequest, "昵称和邮箱均为必填")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.New(http.StatusBadRequest, "邮箱格式不正确")
	}

	// 邮箱换成了别人的邮箱，按冲突处理
	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing.ID != userID {
		return nil, apperror.New(http.StatusConflict, "邮箱已被其他账号使用")
	} else if err != nil && !isNotFoundErr(err) {
		return nil, err
	}

	if err := s.userRepo.UpdateAccount(userID, fullName, email); err != nil {
		return nil, err
	}
	return s.userRepo.FindPublicByID(userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	avatarURL, err := s.uploader.SaveLocalFile(ctx, localPath)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "头像上传失败")
	}
	if err := s.userRepo.UpdateAvatar(userID, avatarURL); err != nil {
		return nil, err
	}
	return s.userRepo.FindPublicByID(userID)
}

func (s *userService) UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	coverURL, err := s.uploader.SaveLocalFile(ctx, localPath)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "封面上传失败")
	}
	if err := s.userRepo.UpdateCover(userID, coverURL); err != nil {
		return nil, err
	}
	return s.userRepo.FindPublicByID(userID)
}

// GetChannelProfile 频道主页：公开信息 + 粉丝数 + 关注数 + 当前访问者是否已订阅
func (s *userService) GetChannelProfile(username string, viewerID uint64) (*dto.ChannelProfileResponse, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.New(http.StatusBadRequest, "用户名不能为空")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "频道不存在")
		}
		return nil, err
	}

	subscriberCount, err := s.subRepo.CountByChannel(user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountBySubscriber(user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subRepo.Exists(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelProfileResponse{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName,
		Avatar:          user.AvatarURL,
		CoverImage:      user.CoverURL,
		SubscriberCount: subscriberCount,
		SubscribedTo:    subscribedTo,
		IsSubscribed:    isSubscribed,
	}, nil
}

func (s *userService) GetWatchHistory(userID uint64) (*model.Video, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.WatchHistoryID == nil {
		return nil, nil
	}
	video, err := s.videoRepo.FindByID(*user.WatchHistoryID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, nil // 视频已被删除，历史视作为空
		}
		return nil, err
	}
	return video, nil
}

// issueTokens 签发一对新凭证并把refresh token写入账号的单槽位，旧会话随之失效
func (s *userService) issueTokens(user *model.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.cfg.AccessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": user.ID,
		// iat只有秒级精度，jti保证同一秒内的两次签发也互不相同，
		// 否则轮换出的新token和旧token字节相同，旧token无法失效
		"jti": uuid.NewString(),
		"exp": now.Add(s.cfg.RefreshTokenTTL).Unix(),
		"iat": now.Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = refreshToken

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// parseRefreshToken 验签refresh token并取出user_id
func (s *userService) parseRefreshToken(tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.RefreshTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	// MapClaims里的数字会被解析成float64
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint64(idFloat), nil
}
