package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	List(c *gin.Context)
	Publish(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	TogglePublish(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

// List 公开的视频列表，支持分页、标题搜索、排序和按频道过滤
// 访问者是可选守卫挂上来的，用于让所有者在列表里看到自己的未发布视频
func (h *videoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	ownerID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)

	result, err := h.VideoService.List(service.ListVideosInput{
		Page:     page,
		Limit:    limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  ownerID,
		ViewerID: optionalUserID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result, "成功获取视频列表")
}

// Publish 发布视频：multipart表单，videoFile和thumbnail都是必传文件
// 时长由客户端在表单里上报（对象存储不解析媒体元数据）
func (h *videoHandler) Publish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "视频文件为必传项"))
		return
	}
	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "缩略图文件为必传项"))
		return
	}

	videoPath, err := stageUpload(c, videoFile)
	if err != nil {
		fail(c, err)
		return
	}
	thumbnailPath, err := stageUpload(c, thumbnailFile)
	if err != nil {
		fail(c, err)
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	logCtx := logger.Log.WithField("user_id", userID)
	logCtx.Info("开始处理视频发布请求")

	video, err := h.VideoService.Publish(c.Request.Context(), service.PublishVideoInput{
		OwnerID:       userID,
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Duration:      duration,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		logCtx.WithError(err).Error("视频发布失败")
		fail(c, err)
		return
	}

	logCtx.WithField("video_id", video.ID).Info("视频发布成功")
	respond(c, http.StatusCreated, dto.ToVideoResponse(video), "视频发布成功")
}

func (h *videoHandler) GetByID(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	video, err := h.VideoService.GetByID(videoID, optionalUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponse(video), "成功获取视频信息")
}

// Update 更新标题/描述/缩略图，三者都可选；缩略图走multipart
func (h *videoHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	thumbnailPath := ""
	if thumbnailFile, fileErr := c.FormFile("thumbnail"); fileErr == nil {
		thumbnailPath, err = stageUpload(c, thumbnailFile)
		if err != nil {
			fail(c, err)
			return
		}
	}

	video, err := h.VideoService.Update(c.Request.Context(), userID, videoID, c.PostForm("title"), c.PostForm("description"), thumbnailPath)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponse(video), "视频信息更新成功")
}

func (h *videoHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.VideoService.Delete(userID, videoID); err != nil {
		fail(c, err)
		return
	}

	logger.Log.WithField("video_id", videoID).Info("视频及关联数据删除成功")
	respond(c, http.StatusOK, nil, "视频删除成功")
}

func (h *videoHandler) TogglePublish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	video, err := h.VideoService.TogglePublish(userID, videoID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"isPublished": video.IsPublished}, "发布状态切换成功")
}
