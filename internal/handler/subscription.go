package handler

import (
	"net/http"

	"vidtube/internal/dto"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	Toggle(c *gin.Context)
	GetSubscribers(c *gin.Context)
	GetSubscribedChannels(c *gin.Context)
}

type subscriptionHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{SubscriptionService: subscriptionService}
}

func (h *subscriptionHandler) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		fail(c, err)
		return
	}

	subscribed, err := h.SubscriptionService.Toggle(userID, channelID)
	if err != nil {
		fail(c, err)
		return
	}

	message := "取消订阅成功"
	if subscribed {
		message = "订阅成功"
	}
	respond(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, message)
}

func (h *subscriptionHandler) GetSubscribers(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		fail(c, err)
		return
	}

	subscribers, err := h.SubscriptionService.GetSubscribers(channelID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToOwnerInfos(subscribers), "成功获取订阅者列表")
}

func (h *subscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	subscriberID, err := parseIDParam(c, "subscriberId")
	if err != nil {
		fail(c, err)
		return
	}

	channels, err := h.SubscriptionService.GetSubscribedChannels(subscriberID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToOwnerInfos(channels), "成功获取订阅频道列表")
}
