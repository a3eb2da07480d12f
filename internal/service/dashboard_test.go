package service

import (
	"net/http"
	"testing"

	"vidtube/internal/apperror"
	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChannelStatsAggregates(t *testing.T) {
	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	subRepo := newFakeSubscriptionRepo(userRepo)
	likeRepo := newFakeLikeRepo(videoRepo)
	svc := NewDashboardService(userRepo, videoRepo, subRepo, likeRepo)

	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "a@x.com", FullName: "Alice"}))
	require.NoError(t, userRepo.Create(&model.User{Username: "bob", Email: "b@x.com"}))

	v1 := &model.Video{OwnerID: 1, Title: "v1", Views: 100, IsPublished: true}
	v2 := &model.Video{OwnerID: 1, Title: "v2", Views: 50, IsPublished: false}
	other := &model.Video{OwnerID: 2, Title: "other", Views: 999, IsPublished: true}
	require.NoError(t, videoRepo.Create(v1))
	require.NoError(t, videoRepo.Create(v2))
	require.NoError(t, videoRepo.Create(other))

	require.NoError(t, subRepo.Create(&model.Subscription{SubscriberID: 2, ChannelID: 1}))
	require.NoError(t, likeRepo.Create(&model.Like{OwnerID: 2, VideoID: &v1.ID}))
	require.NoError(t, likeRepo.Create(&model.Like{OwnerID: 2, VideoID: &other.ID}))

	stats, err := svc.GetChannelStats(1)
	require.NoError(t, err)

	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, int64(1), stats.TotalSubscribers)
	// 未发布的视频也计入创作者自己的统计
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(150), stats.TotalViews)
	// 别人频道的点赞不计入
	assert.Equal(t, int64(1), stats.TotalLikes)
}

func TestGetChannelStatsMissingChannel(t *testing.T) {
	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	svc := NewDashboardService(userRepo, videoRepo, newFakeSubscriptionRepo(userRepo), newFakeLikeRepo(videoRepo))

	_, err := svc.GetChannelStats(999)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetChannelVideosIncludesDrafts(t *testing.T) {
	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	svc := NewDashboardService(userRepo, videoRepo, newFakeSubscriptionRepo(userRepo), newFakeLikeRepo(videoRepo))

	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "a@x.com"}))
	require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "公开", IsPublished: true}))
	require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "草稿", IsPublished: false}))

	videos, err := svc.GetChannelVideos(1)
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}
