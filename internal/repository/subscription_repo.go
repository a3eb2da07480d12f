package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	// Delete 返回受影响的行数，0表示原本就没有订阅
	Delete(subscriberID, channelID uint64) (int64, error)
	Exists(subscriberID, channelID uint64) (bool, error)
	CountByChannel(channelID uint64) (int64, error)
	CountBySubscriber(subscriberID uint64) (int64, error)
	// FindSubscribers 订阅了某频道的用户列表（公开字段）
	FindSubscribers(channelID uint64) ([]model.User, error)
	// FindChannels 某用户订阅的频道列表（公开字段）
	FindChannels(subscriberID uint64) ([]model.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Delete(subscriberID, channelID uint64) (int64, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	return result.RowsAffected, result.Error
}

func (r *subscriptionRepository) Exists(subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountByChannel(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountBySubscriber(subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) FindSubscribers(channelID uint64) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Omit("password", "refresh_token").
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID).
		Find(&users).Error
	return users, err
}

func (r *subscriptionRepository) FindChannels(subscriberID uint64) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Omit("password", "refresh_token").
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Find(&users).Error
	return users, err
}
