package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"vidtube/internal/apperror"
	"vidtube/internal/config"
	"vidtube/internal/dto"
	"vidtube/internal/middleware"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = logrus.New()
	logger.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// stubUserService 只实现登录流程，handler测试关心的是HTTP层的行为
type stubUserService struct {
	service.UserService

	loginUser *model.User
	loginPair *service.TokenPair
	loginErr  error
}

func (s *stubUserService) Login(email, password string) (*model.User, *service.TokenPair, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return s.loginUser, s.loginPair, nil
}

func (s *stubUserService) Refresh(refreshToken string) (*model.User, *service.TokenPair, error) {
	return s.loginUser, s.loginPair, nil
}

func newLoginRouter(svc service.UserService) *gin.Engine {
	cfg := &config.Config{Env: "production", RefreshTokenTTL: 7 * 24 * time.Hour}
	r := gin.New()
	r.Use(middleware.ErrorHandler(true))
	h := NewUserHandler(cfg, svc)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.RefreshToken)
	return r
}

func TestLoginSetsHttpOnlyCookiesAndEnvelope(t *testing.T) {
	user := &model.User{Username: "alice", Email: "a@x.com", FullName: "Alice"}
	user.ID = 7
	svc := &stubUserService{
		loginUser: user,
		loginPair: &service.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"},
	}
	r := newLoginRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		StatusCode int              `json:"statusCode"`
		Data       dto.AuthResponse `json:"data"`
		Message    string           `json:"message"`
		Success    bool             `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusOK, body.StatusCode)
	assert.Equal(t, "access-jwt", body.Data.AccessToken)
	assert.Equal(t, uint64(7), body.Data.User.ID)

	cookies := w.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	require.Contains(t, byName, "accessToken")
	require.Contains(t, byName, "refreshToken")
	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := byName[name]
		assert.True(t, cookie.HttpOnly, name)
		assert.True(t, cookie.Secure, name)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite, name)
		assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge, name)
	}
	assert.Equal(t, "refresh-jwt", byName["refreshToken"].Value)
}

func TestLoginFailureUsesErrorEnvelope(t *testing.T) {
	svc := &stubUserService{loginErr: apperror.New(http.StatusUnauthorized, "邮箱或密码错误")}
	r := newLoginRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "邮箱或密码错误", body["message"])
	// 登录失败不发任何cookie
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	r := newLoginRouter(&stubUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshReadsCookieFirst(t *testing.T) {
	user := &model.User{Username: "alice"}
	user.ID = 7
	svc := &stubUserService{
		loginUser: user,
		loginPair: &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
	}
	r := newLoginRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old-refresh"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access")
}
