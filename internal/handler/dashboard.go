package handler

import (
	"net/http"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler interface {
	GetChannelStats(c *gin.Context)
	GetChannelVideos(c *gin.Context)
}

type dashboardHandler struct {
	DashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) DashboardHandler {
	return &dashboardHandler{DashboardService: dashboardService}
}

func (h *dashboardHandler) GetChannelStats(c *gin.Context) {
	channelID, ok := h.ownChannelID(c)
	if !ok {
		return
	}

	stats, err := h.DashboardService.GetChannelStats(channelID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "成功获取频道统计数据")
}

// GetChannelVideos 返回频道的全部视频，创作者后台用，含未发布的
func (h *dashboardHandler) GetChannelVideos(c *gin.Context) {
	channelID, ok := h.ownChannelID(c)
	if !ok {
		return
	}

	videos, err := h.DashboardService.GetChannelVideos(channelID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponses(videos), "成功获取频道视频列表")
}

// ownChannelID 后台数据含未发布视频，只允许频道主本人查询
func (h *dashboardHandler) ownChannelID(c *gin.Context) (uint64, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return 0, false
	}
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		fail(c, err)
		return 0, false
	}
	if channelID != userID {
		fail(c, apperror.New(http.StatusForbidden, "无权查看他人的频道后台"))
		return 0, false
	}
	return channelID, true
}
