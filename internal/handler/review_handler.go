package handler

import (
	"net/http"
	"strconv"

	"MilCan_Platform/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{svc: service.NewReviewService()}
}

// ReviewReq 三项子分数，范围在service里校验
type ReviewReq struct {
	Accuracy  *int   `json:"accuracy" binding:"required"`
	Context   *int   `json:"context" binding:"required"`
	Citations *int   `json:"citations" binding:"required"`
	Notes     string `json:"notes"`
}

// Approve 过审，记分并给创作者积分
func (h *ReviewHandler) Approve(c *gin.Context) {
	h.apply(c, true)
}

// Reject 驳回，记分但不给积分
func (h *ReviewHandler) Reject(c *gin.Context) {
	h.apply(c, false)
}

func (h *ReviewHandler) apply(c *gin.Context, approve bool) {
	assetID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	in := service.ReviewInput{
		ReviewerID: memberIDFromCtx(c),
		Accuracy:   *req.Accuracy,
		Context:    *req.Context,
		Citations:  *req.Citations,
		Notes:      req.Notes,
	}

	var (
		a   any
		err error
	)
	if approve {
		asset, e := h.svc.Approve(c.Request.Context(), assetID, in)
		if e == nil {
			a = toAssetView(asset)
		}
		err = e
	} else {
		asset, e := h.svc.Reject(c.Request.Context(), assetID, in)
		if e == nil {
			a = toAssetView(asset)
		}
		err = e
	}
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": a})
}
