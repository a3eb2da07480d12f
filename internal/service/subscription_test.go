package service

import (
	"net/http"
	"testing"

	"vidtube/internal/apperror"
	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriptionFixture(t *testing.T) (SubscriptionService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	subRepo := newFakeSubscriptionRepo(userRepo)
	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "a@x.com"}))
	require.NoError(t, userRepo.Create(&model.User{Username: "bob", Email: "b@x.com"}))
	return NewSubscriptionService(subRepo, userRepo), userRepo
}

func TestToggleSubscriptionFlipFlop(t *testing.T) {
	svc, _ := newSubscriptionFixture(t)

	subscribed, err := svc.Toggle(1, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribed, err = svc.Toggle(1, 2)
	require.NoError(t, err)
	assert.False(t, subscribed)

	subscribed, err = svc.Toggle(1, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)
}

func TestToggleSubscriptionRejectsSelf(t *testing.T) {
	svc, _ := newSubscriptionFixture(t)

	_, err := svc.Toggle(1, 1)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestToggleSubscriptionMissingChannel(t *testing.T) {
	svc, _ := newSubscriptionFixture(t)

	_, err := svc.Toggle(1, 999)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestSubscriberAndChannelLists(t *testing.T) {
	svc, _ := newSubscriptionFixture(t)

	_, err := svc.Toggle(1, 2)
	require.NoError(t, err)

	subscribers, err := svc.GetSubscribers(2)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "alice", subscribers[0].Username)

	channels, err := svc.GetSubscribedChannels(1)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "bob", channels[0].Username)

	_, err = svc.GetSubscribers(999)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
