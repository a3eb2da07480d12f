package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"vidtube/internal/apperror"
	"vidtube/internal/config"
	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                "development",
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
}

func newTestUserService() (UserService, *fakeUserRepo, *fakeUploader) {
	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	subRepo := newFakeSubscriptionRepo(userRepo)
	uploader := &fakeUploader{}
	return NewUserService(testConfig(), userRepo, videoRepo, subRepo, uploader), userRepo, uploader
}

func registerTestUser(t *testing.T, svc UserService) (*model.User, *TokenPair) {
	t.Helper()
	user, pair, err := svc.Register(context.Background(), RegisterInput{
		Username:   "Alice",
		Email:      "Alice@Example.com",
		FullName:   "Alice Zhang",
		Password:   "secret123",
		AvatarPath: "/tmp/avatar.png",
	})
	require.NoError(t, err)
	return user, pair
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, userRepo, uploader := newTestUserService()

	user, pair := registerTestUser(t, svc)

	// 用户名和邮箱统一小写
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	// 明文密码不落库
	stored := userRepo.users[user.ID]
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
	// 注册即登录：签发了会话并持久化了refresh token
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
	// 头像走了上传器
	assert.Equal(t, []string{"/tmp/avatar.png"}, uploader.uploads)
}

func TestRegisterRejectsDuplicateAndBadInput(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc)

	// 邮箱相同但大小写不同，仍算重复
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username:   "bob",
		Email:      "ALICE@example.com",
		FullName:   "Bob Li",
		Password:   "pw",
		AvatarPath: "/tmp/a.png",
	})
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Username:   "bob",
		Email:      "not-an-email",
		FullName:   "Bob Li",
		Password:   "pw",
		AvatarPath: "/tmp/a.png",
	})
	apiErr = apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestLoginUniformUnauthorized(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc)

	// 密码错误和账号不存在必须是同一个401文案
	_, _, wrongPw := svc.Login("alice@example.com", "wrong")
	_, _, noUser := svc.Login("ghost@example.com", "secret123")

	pwErr := apperror.As(wrongPw)
	userErr := apperror.As(noUser)
	require.NotNil(t, pwErr)
	require.NotNil(t, userErr)
	assert.Equal(t, http.StatusUnauthorized, pwErr.StatusCode)
	assert.Equal(t, pwErr.Message, userErr.Message)
}

func TestLoginSucceedsWithMixedCaseEmail(t *testing.T) {
	svc, _, _ := newTestUserService()
	registered, _ := registerTestUser(t, svc)

	user, pair, err := svc.Login("ALICE@EXAMPLE.COM", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshRotatesAndInvalidatesOldToken(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	user, pair := registerTestUser(t, svc)

	_, newPair, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)
	assert.Equal(t, newPair.RefreshToken, userRepo.users[user.ID].RefreshToken)

	// 槽位里已经是新token，旧token再来就拒绝
	_, _, err = svc.Refresh(pair.RefreshToken)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRefreshTokensDistinctAcrossRapidRotations(t *testing.T) {
	svc, _, _ := newTestUserService()
	_, pair := registerTestUser(t, svc)

	// 连续轮换都发生在同一秒内，iat相同也必须签出不同的token
	seen := map[string]bool{pair.RefreshToken: true}
	current := pair.RefreshToken
	for i := 0; i < 5; i++ {
		_, next, err := svc.Refresh(current)
		require.NoError(t, err)
		assert.False(t, seen[next.RefreshToken], "轮换必须产生全新的refresh token")
		seen[next.RefreshToken] = true

		// 被顶掉的token立即失效
		_, _, err = svc.Refresh(current)
		apiErr := apperror.As(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

		current = next.RefreshToken
	}
}

func TestRefreshRejectedAfterLogout(t *testing.T) {
	svc, _, _ := newTestUserService()
	user, pair := registerTestUser(t, svc)

	require.NoError(t, svc.Logout(user.ID))

	_, _, err := svc.Refresh(pair.RefreshToken)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc)

	for _, token := range []string{"", "not.a.jwt"} {
		_, _, err := svc.Refresh(token)
		apiErr := apperror.As(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	svc, _, _ := newTestUserService()
	user, _ := registerTestUser(t, svc)

	err := svc.ChangePassword(user.ID, "wrong-old", "newpw")
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	require.NoError(t, svc.ChangePassword(user.ID, "secret123", "newpw"))
	_, _, err = svc.Login("alice@example.com", "newpw")
	assert.NoError(t, err)
}

func TestUpdateAccountRejectsTakenEmail(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc)
	bob, _, err := svc.Register(context.Background(), RegisterInput{
		Username:   "bob",
		Email:      "bob@example.com",
		FullName:   "Bob Li",
		Password:   "pw",
		AvatarPath: "/tmp/b.png",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAccount(bob.ID, "Bob Li", "alice@example.com")
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	// 换回自己现在的邮箱不算冲突
	updated, err := svc.UpdateAccount(bob.ID, "Bobby", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bobby", updated.FullName)
}

func TestGetChannelProfileSubscriptionFlag(t *testing.T) {
	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	subRepo := newFakeSubscriptionRepo(userRepo)
	svc := NewUserService(testConfig(), userRepo, videoRepo, subRepo, &fakeUploader{})

	alice, _ := registerTestUser(t, svc)
	require.NoError(t, subRepo.Create(&model.Subscription{SubscriberID: 42, ChannelID: alice.ID}))

	profile, err := svc.GetChannelProfile("alice", 42)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)
	assert.Equal(t, int64(1), profile.SubscriberCount)

	// 匿名访问者永远是未订阅
	profile, err = svc.GetChannelProfile("ALICE", 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = svc.GetChannelProfile("nobody", 0)
	apiErr := apperror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetWatchHistory(t *testing.T) {
	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	subRepo := newFakeSubscriptionRepo(userRepo)
	svc := NewUserService(testConfig(), userRepo, videoRepo, subRepo, &fakeUploader{})

	user, _ := registerTestUser(t, svc)

	// 没有历史时返回空而不是错误
	video, err := svc.GetWatchHistory(user.ID)
	require.NoError(t, err)
	assert.Nil(t, video)

	watched := &model.Video{OwnerID: user.ID, Title: "t", IsPublished: true}
	require.NoError(t, videoRepo.Create(watched))
	require.NoError(t, userRepo.SetWatchHistory(user.ID, watched.ID))

	video, err = svc.GetWatchHistory(user.ID)
	require.NoError(t, err)
	require.NotNil(t, video)
	assert.Equal(t, watched.ID, video.ID)

	// 视频被删掉后历史视作为空
	require.NoError(t, videoRepo.Delete(watched.ID))
	video, err = svc.GetWatchHistory(user.ID)
	require.NoError(t, err)
	assert.Nil(t, video)
}
