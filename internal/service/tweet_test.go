package service

import (
	"net/http"
	"testing"

	"vidtube/internal/apperror"
	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTweetFixture(t *testing.T) TweetService {
	t.Helper()
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "a@x.com"}))
	return NewTweetService(newFakeTweetRepo(), userRepo)
}

func TestTweetLifecycle(t *testing.T) {
	svc := newTweetFixture(t)

	_, err := svc.Create(1, "   ")
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	tweet, err := svc.Create(1, "  第一条动态  ")
	require.NoError(t, err)
	assert.Equal(t, "第一条动态", tweet.Content)

	_, err = svc.Update(2, tweet.ID, "别人来改")
	apiErr = apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	updated, err := svc.Update(1, tweet.ID, "改过了")
	require.NoError(t, err)
	assert.Equal(t, "改过了", updated.Content)

	require.NoError(t, svc.Delete(1, tweet.ID))
	err = svc.Delete(1, tweet.ID)
	apiErr = apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestTweetFeeds(t *testing.T) {
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "a@x.com"}))
	svc := NewTweetService(newFakeTweetRepo(), userRepo)

	first, err := svc.Create(1, "first")
	require.NoError(t, err)
	second, err := svc.Create(1, "second")
	require.NoError(t, err)

	// 新动态在前
	all, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	_, err = svc.GetByUser(999)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
