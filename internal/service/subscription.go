package service

import (
	"net/http"

	"vidtube/internal/apperror"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type SubscriptionService interface {
	// Toggle 返回翻转后的状态，true表示本次变为已订阅
	Toggle(subscriberID, channelID uint64) (bool, error)
	GetSubscribers(channelID uint64) ([]model.User, error)
	GetSubscribedChannels(subscriberID uint64) ([]model.User, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Toggle 订阅/取消订阅：1、不能订阅自己 2、频道必须存在 3、先删后插，1062视作已订阅
func (s *subscriptionService) Toggle(subscriberID, channelID uint64) (bool, error) {
	if subscriberID == channelID {
		return false, apperror.New(http.StatusBadRequest, "不能订阅自己的频道")
	}

	if _, err := s.userRepo.FindPublicByID(channelID); err != nil {
		if isNotFoundErr(err) {
			return false, apperror.New(http.StatusNotFound, "频道不存在")
		}
		return false, err
	}

	deleted, err := s.subRepo.Delete(subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	err = s.subRepo.Create(&model.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	})
	if err != nil {
		if isDuplicateKeyErr(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *subscriptionService) GetSubscribers(channelID uint64) ([]model.User, error) {
	if _, err := s.userRepo.FindPublicByID(channelID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "频道不存在")
		}
		return nil, err
	}
	return s.subRepo.FindSubscribers(channelID)
}

func (s *subscriptionService) GetSubscribedChannels(subscriberID uint64) ([]model.User, error) {
	if _, err := s.userRepo.FindPublicByID(subscriberID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "用户不存在")
		}
		return nil, err
	}
	return s.subRepo.FindChannels(subscriberID)
}
