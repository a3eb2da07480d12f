package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	ListByVideo(c *gin.Context)
	Add(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *commentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.CommentService.ListByVideo(videoID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result, "成功获取评论列表")
}

func (h *commentHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	comment, err := h.CommentService.Add(userID, videoID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToCommentResponse(comment), "评论发表成功")
}

func (h *commentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		fail(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	comment, err := h.CommentService.Update(userID, commentID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToCommentResponse(comment), "评论更新成功")
}

func (h *commentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.CommentService.Delete(userID, commentID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "评论删除成功")
}
