package handler

import (
	"net/http"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	Create(c *gin.Context)
	GetAll(c *gin.Context)
	GetByUser(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *tweetHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	tweet, err := h.TweetService.Create(userID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToTweetResponse(tweet), "动态发布成功")
}

func (h *tweetHandler) GetAll(c *gin.Context) {
	tweets, err := h.TweetService.GetAll()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToTweetResponses(tweets), "成功获取动态列表")
}

func (h *tweetHandler) GetByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}

	tweets, err := h.TweetService.GetByUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToTweetResponses(tweets), "成功获取用户动态列表")
}

func (h *tweetHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tweetID, err := parseIDParam(c, "tweetId")
	if err != nil {
		fail(c, err)
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	tweet, err := h.TweetService.Update(userID, tweetID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToTweetResponse(tweet), "动态更新成功")
}

func (h *tweetHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tweetID, err := parseIDParam(c, "tweetId")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.TweetService.Delete(userID, tweetID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "动态删除成功")
}
