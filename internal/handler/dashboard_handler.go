package handler

import (
	"net/http"
	"strconv"

	"MilCan_Platform/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc      *service.DashboardService
	activity *service.ActivityService
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{
		svc:      service.NewDashboardService(),
		activity: service.NewActivityService(),
	}
}

// Stats 仪表盘汇总
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.ComputeStats(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Activity 最近活动流水
func (h *DashboardHandler) Activity(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.activity.Recent(c.Request.Context(), page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
