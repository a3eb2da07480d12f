package service

import (
	"net/http"
	"testing"

	"vidtube/internal/apperror"
	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type likeFixture struct {
	svc         LikeService
	videoRepo   *fakeVideoRepo
	commentRepo *fakeCommentRepo
	tweetRepo   *fakeTweetRepo
	likeRepo    *fakeLikeRepo
}

func newLikeFixture() *likeFixture {
	videoRepo := newFakeVideoRepo()
	commentRepo := newFakeCommentRepo()
	tweetRepo := newFakeTweetRepo()
	likeRepo := newFakeLikeRepo(videoRepo)
	return &likeFixture{
		svc:         NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo),
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		likeRepo:    likeRepo,
	}
}

func TestToggleVideoLikeFlipFlop(t *testing.T) {
	f := newLikeFixture()
	video := &model.Video{OwnerID: 1, Title: "t", IsPublished: true}
	require.NoError(t, f.videoRepo.Create(video))

	liked, err := f.svc.ToggleVideoLike(7, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = f.svc.ToggleVideoLike(7, video.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// 再翻回来必须能重新点上，唯一索引没有残留
	liked, err = f.svc.ToggleVideoLike(7, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleLikeMissingTargets(t *testing.T) {
	f := newLikeFixture()

	cases := []struct {
		name   string
		toggle func() (bool, error)
	}{
		{"video", func() (bool, error) { return f.svc.ToggleVideoLike(1, 999) }},
		{"comment", func() (bool, error) { return f.svc.ToggleCommentLike(1, 999) }},
		{"tweet", func() (bool, error) { return f.svc.ToggleTweetLike(1, 999) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.toggle()
			apiErr := apperror.As(err)
			require.NotNil(t, apiErr)
			assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		})
	}
}

func TestToggleLikeDistinguishesTargetKinds(t *testing.T) {
	f := newLikeFixture()
	video := &model.Video{OwnerID: 1, Title: "t", IsPublished: true}
	require.NoError(t, f.videoRepo.Create(video))
	comment := &model.Comment{VideoID: video.ID, OwnerID: 1, Content: "c"}
	require.NoError(t, f.commentRepo.Create(comment))

	// 视频和评论恰好同ID，互不干扰
	liked, err := f.svc.ToggleVideoLike(7, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = f.svc.ToggleCommentLike(7, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = f.svc.ToggleVideoLike(7, video.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// 取消视频点赞不影响评论点赞
	liked, err = f.svc.ToggleCommentLike(7, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestGetLikedVideos(t *testing.T) {
	f := newLikeFixture()
	video := &model.Video{OwnerID: 1, Title: "liked", IsPublished: true}
	require.NoError(t, f.videoRepo.Create(video))
	tweet := &model.Tweet{OwnerID: 1, Content: "t"}
	require.NoError(t, f.tweetRepo.Create(tweet))

	_, err := f.svc.ToggleVideoLike(7, video.ID)
	require.NoError(t, err)
	_, err = f.svc.ToggleTweetLike(7, tweet.ID)
	require.NoError(t, err)

	// 只返回视频点赞，动态点赞不混进来
	videos, err := f.svc.GetLikedVideos(7)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "liked", videos[0].Title)
}
