package service

import (
	"net/http"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type DashboardService interface {
	// GetChannelStats 每次调用都从存储重新统计，不做缓存和增量维护
	GetChannelStats(channelID uint64) (*dto.ChannelStatsResponse, error)
	GetChannelVideos(channelID uint64) ([]model.Video, error)
}

type dashboardService struct {
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	likeRepo  repository.LikeRepository
}

func NewDashboardService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository, likeRepo repository.LikeRepository) DashboardService {
	return &dashboardService{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		subRepo:   subRepo,
		likeRepo:  likeRepo,
	}
}

func (s *dashboardService) GetChannelStats(channelID uint64) (*dto.ChannelStatsResponse, error) {
	user, err := s.userRepo.FindPublicByID(channelID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "频道不存在")
		}
		return nil, err
	}

	totalSubscribers, err := s.subRepo.CountByChannel(channelID)
	if err != nil {
		return nil, err
	}
	totalVideos, err := s.videoRepo.CountByOwner(channelID)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.videoRepo.SumViewsByOwner(channelID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likeRepo.CountForChannelVideos(channelID)
	if err != nil {
		return nil, err
	}

	return &dto.ChannelStatsResponse{
		ChannelID:        user.ID,
		Username:         user.Username,
		FullName:         user.FullName,
		Avatar:           user.AvatarURL,
		TotalSubscribers: totalSubscribers,
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalLikes:       totalLikes,
	}, nil
}

func (s *dashboardService) GetChannelVideos(channelID uint64) ([]model.Video, error) {
	if _, err := s.userRepo.FindPublicByID(channelID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "频道不存在")
		}
		return nil, err
	}
	return s.videoRepo.FindByOwner(channelID)
}
