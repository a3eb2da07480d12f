package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckHandler interface {
	Check(c *gin.Context)
}

type healthcheckHandler struct{}

func NewHealthcheckHandler() HealthcheckHandler {
	return &healthcheckHandler{}
}

// Check 存活探针，不检查下游依赖
func (h *healthcheckHandler) Check(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"status": "OK"}, "服务运行正常")
}
