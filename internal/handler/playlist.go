package handler

import (
	"net/http"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/model"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	Create(c *gin.Context)
	GetByUser(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{PlaylistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *playlistHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	playlist, err := h.PlaylistService.Create(userID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToPlaylistResponse(playlist), "收藏夹创建成功")
}

func (h *playlistHandler) GetByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}

	playlists, err := h.PlaylistService.GetByUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistResponses(playlists), "成功获取收藏夹列表")
}

func (h *playlistHandler) GetByID(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		fail(c, err)
		return
	}

	playlist, err := h.PlaylistService.GetByID(playlistID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "成功获取收藏夹信息")
}

func (h *playlistHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		fail(c, err)
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.New(http.StatusBadRequest, "无效的参数"))
		return
	}

	playlist, err := h.PlaylistService.Update(userID, playlistID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "收藏夹更新成功")
}

func (h *playlistHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.PlaylistService.Delete(userID, playlistID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "收藏夹删除成功")
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
	h.mutateVideo(c, h.PlaylistService.AddVideo, "视频添加到收藏夹成功")
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
	h.mutateVideo(c, h.PlaylistService.RemoveVideo, "视频从收藏夹移除成功")
}

// mutateVideo 添加和移除共用：路径里同时带playlistId和videoId
func (h *playlistHandler) mutateVideo(c *gin.Context, do func(ownerID, playlistID, videoID uint64) (*model.Playlist, error), message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		fail(c, err)
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		fail(c, err)
		return
	}

	playlist, err := do(userID, playlistID, videoID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistResponse(playlist), message)
}
