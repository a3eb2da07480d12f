package service

import (
	"net/http"
	"testing"

	"vidtube/internal/apperror"
	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playlistFixture struct {
	svc       PlaylistService
	videoRepo *fakeVideoRepo
	userRepo  *fakeUserRepo
}

func newPlaylistFixture(t *testing.T) *playlistFixture {
	t.Helper()
	playlistRepo := newFakePlaylistRepo()
	videoRepo := newFakeVideoRepo()
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "a@x.com"}))
	return &playlistFixture{
		svc:       NewPlaylistService(playlistRepo, videoRepo, userRepo),
		videoRepo: videoRepo,
		userRepo:  userRepo,
	}
}

func (f *playlistFixture) addVideo(t *testing.T, title string) *model.Video {
	t.Helper()
	video := &model.Video{OwnerID: 1, Title: title, IsPublished: true}
	require.NoError(t, f.videoRepo.Create(video))
	return video
}

func TestCreatePlaylistRequiresName(t *testing.T) {
	f := newPlaylistFixture(t)

	_, err := f.svc.Create(1, "   ", "desc")
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	playlist, err := f.svc.Create(1, "  收藏  ", "desc")
	require.NoError(t, err)
	assert.Equal(t, "收藏", playlist.Name)
}

func TestAddVideoAppendsInOrder(t *testing.T) {
	f := newPlaylistFixture(t)
	playlist, err := f.svc.Create(1, "mix", "")
	require.NoError(t, err)

	first := f.addVideo(t, "first")
	second := f.addVideo(t, "second")

	_, err = f.svc.AddVideo(1, playlist.ID, first.ID)
	require.NoError(t, err)
	updated, err := f.svc.AddVideo(1, playlist.ID, second.ID)
	require.NoError(t, err)

	require.Len(t, updated.Videos, 2)
	assert.Equal(t, 1, updated.Videos[0].Position)
	assert.Equal(t, first.ID, updated.Videos[0].VideoID)
	assert.Equal(t, 2, updated.Videos[1].Position)
	assert.Equal(t, second.ID, updated.Videos[1].VideoID)
}

func TestAddVideoRejectsDuplicate(t *testing.T) {
	f := newPlaylistFixture(t)
	playlist, err := f.svc.Create(1, "mix", "")
	require.NoError(t, err)
	video := f.addVideo(t, "v")

	_, err = f.svc.AddVideo(1, playlist.ID, video.ID)
	require.NoError(t, err)

	_, err = f.svc.AddVideo(1, playlist.ID, video.ID)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestAddVideoOwnershipAndExistence(t *testing.T) {
	f := newPlaylistFixture(t)
	playlist, err := f.svc.Create(1, "mix", "")
	require.NoError(t, err)
	video := f.addVideo(t, "v")

	_, err = f.svc.AddVideo(2, playlist.ID, video.ID)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	_, err = f.svc.AddVideo(1, playlist.ID, 999)
	apiErr = apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestRemoveVideoIsIdempotent(t *testing.T) {
	f := newPlaylistFixture(t)
	playlist, err := f.svc.Create(1, "mix", "")
	require.NoError(t, err)
	video := f.addVideo(t, "v")

	_, err = f.svc.AddVideo(1, playlist.ID, video.ID)
	require.NoError(t, err)

	updated, err := f.svc.RemoveVideo(1, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Videos)

	// 再删一次不报错
	_, err = f.svc.RemoveVideo(1, playlist.ID, video.ID)
	assert.NoError(t, err)
}

func TestPlaylistUpdateAndDelete(t *testing.T) {
	f := newPlaylistFixture(t)
	playlist, err := f.svc.Create(1, "old", "old desc")
	require.NoError(t, err)

	updated, err := f.svc.Update(1, playlist.ID, "new", "")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, "old desc", updated.Description)

	_, err = f.svc.Update(2, playlist.ID, "x", "")
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	require.NoError(t, f.svc.Delete(1, playlist.ID))
	_, err = f.svc.GetByID(playlist.ID)
	apiErr = apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
