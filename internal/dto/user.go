package dto

import (
	"time"

	"vidtube/internal/model"
)

// OwnerInfo 各类资源响应里内嵌的作者公开信息
type OwnerInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// UserResponse 账号自身的响应结构，密码和refresh token永远不出现在这里
type UserResponse struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthResponse 登录/注册/刷新成功后的响应，access token同时写入cookie和body
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// ChannelProfileResponse 频道主页：公开信息加上订阅统计
type ChannelProfileResponse struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	Avatar          string `json:"avatar"`
	CoverImage      string `json:"coverImage"`
	SubscriberCount int64  `json:"subscriberCount"`
	SubscribedTo    int64  `json:"subscribedToCount"`
	IsSubscribed    bool   `json:"isSubscribed"`
}

func ToOwnerInfo(user *model.User) OwnerInfo {
	return OwnerInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.AvatarURL,
	}
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.AvatarURL,
		CoverImage: user.CoverURL,
		CreatedAt:  user.CreatedAt,
	}
}

func ToOwnerInfos(users []model.User) []OwnerInfo {
	infos := make([]OwnerInfo, 0, len(users))
	for i := range users {
		infos = append(infos, ToOwnerInfo(&users[i]))
	}
	return infos
}
