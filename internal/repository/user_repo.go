package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

// 用户仓库：账号的创建、查找和各类单字段更新
type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	// FindPublicByID 加载用户但排除密码哈希和refresh token，给请求守卫用
	FindPublicByID(userID uint64) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// 注册时的查重：用户名或邮箱任一命中即返回
	FindByUsernameOrEmail(username, email string) (*model.User, error)

	UpdateRefreshToken(userID uint64, refreshToken string) error
	UpdatePassword(userID uint64, hashedPassword string) error
	UpdateAccount(userID uint64, fullName, email string) error
	UpdateAvatar(userID uint64, avatarURL string) error
	UpdateCover(userID uint64, coverURL string) error
	SetWatchHistory(userID, videoID uint64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.First(&result, userID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindPublicByID(userID uint64) (*model.User, error) {
	var result model.User
	// Omit确保敏感列根本不会离开数据库
	err := r.db.Omit("password", "refresh_token").First(&result, userID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("email = ?", email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) UpdateRefreshToken(userID uint64, refreshToken string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token", refreshToken).Error
}

func (r *userRepository) UpdatePassword(userID uint64, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateAccount(userID uint64, fullName, email string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"full_name": fullName, "email": email}).Error
}

func (r *userRepository) UpdateAvatar(userID uint64, avatarURL string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

func (r *userRepository) UpdateCover(userID uint64, coverURL string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("cover_url", coverURL).Error
}

func (r *userRepository) SetWatchHistory(userID, videoID uint64) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("watch_history_id", videoID).Error
}
