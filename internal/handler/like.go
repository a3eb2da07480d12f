package handler

import (
	"net/http"

	"vidtube/internal/dto"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	GetLikedVideos(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", h.LikeService.ToggleVideoLike)
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", h.LikeService.ToggleCommentLike)
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", h.LikeService.ToggleTweetLike)
}

// toggle 三类点赞共用的翻转流程，响应里带上翻转后的状态
func (h *likeHandler) toggle(c *gin.Context, param string, do func(ownerID, targetID uint64) (bool, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, err := parseIDParam(c, param)
	if err != nil {
		fail(c, err)
		return
	}

	liked, err := do(userID, targetID)
	if err != nil {
		fail(c, err)
		return
	}

	message := "取消点赞成功"
	if liked {
		message = "点赞成功"
	}
	respond(c, http.StatusOK, gin.H{"isLiked": liked}, message)
}

func (h *likeHandler) GetLikedVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	videos, err := h.LikeService.GetLikedVideos(userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponses(videos), "成功获取点赞视频列表")
}
