package handler

import (
	"net/http"
	"strconv"
	"time"

	"MilCan_Platform/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{svc: service.NewEventService()}
}

type CreateEventReq struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Campus      string    `json:"campus"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	e, err := h.svc.Create(c.Request.Context(), service.CreateEventInput{
		CreatedBy:   memberIDFromCtx(c),
		Title:       req.Title,
		Description: req.Description,
		Campus:      req.Campus,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": e})
}

func (h *EventHandler) ListUpcoming(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListUpcoming(c.Request.Context(), page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
