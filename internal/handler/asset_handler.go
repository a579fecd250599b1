package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/service"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	svc *service.AssetService
}

func NewAssetHandler() *AssetHandler {
	return &AssetHandler{svc: service.NewAssetService()}
}

// SubmitReq 投稿请求体
type SubmitReq struct {
	Type        string   `json:"type" binding:"required,oneof=video carousel script"`
	Topic       string   `json:"topic" binding:"required,oneof=ad-transparency before-after deepfake verify-30s"`
	Title       string   `json:"title" binding:"required"`
	Link        string   `json:"link"`
	Caption     string   `json:"caption"`
	Citations   []string `json:"citations"`
	HasCaptions bool     `json:"captions"`
}

// assetView review只在终态才暴露
type assetView struct {
	ID           uint64              `json:"id"`
	CreatorID    uint64              `json:"creator_id"`
	Type         string              `json:"type"`
	Topic        string              `json:"topic"`
	Title        string              `json:"title"`
	Link         string              `json:"link,omitempty"`
	Caption      string              `json:"caption,omitempty"`
	Citations    []string            `json:"citations"`
	HasCaptions  bool                `json:"captions"`
	Status       string              `json:"status"`
	Score        int                 `json:"score"`
	MonthlyViews int64               `json:"monthly_views"`
	Review       *model.AssetReview  `json:"review,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func toAssetView(a *model.Asset) assetView {
	v := assetView{
		ID:           a.ID,
		CreatorID:    a.CreatorID,
		Type:         a.Type,
		Topic:        a.Topic,
		Title:        a.Title,
		Link:         a.Link,
		Caption:      a.Caption,
		HasCaptions:  a.HasCaptions,
		Status:       a.Status,
		Score:        a.Score,
		MonthlyViews: a.MonthlyViews,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	_ = json.Unmarshal([]byte(a.Citations), &v.Citations)
	if a.HasReview() {
		rev := a.Review
		v.Review = &rev
	}
	return v
}

// Submit 创作者投稿，初始pending、0分
func (h *AssetHandler) Submit(c *gin.Context) {
	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	a, err := h.svc.Submit(c.Request.Context(), service.SubmitInput{
		CreatorID:   memberIDFromCtx(c),
		Type:        req.Type,
		Topic:       req.Topic,
		Title:       req.Title,
		Link:        req.Link,
		Caption:     req.Caption,
		Citations:   req.Citations,
		HasCaptions: req.HasCaptions,
	})
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": toAssetView(a)})
}

func (h *AssetHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": toAssetView(a)})
}

// List status/creator_id可选过滤
func (h *AssetHandler) List(c *gin.Context) {
	status := c.Query("status")
	creatorID, _ := strconv.ParseUint(c.Query("creator_id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(c.Request.Context(), status, creatorID, page, size)
	if err != nil {
		writeErr(c, err)
		return
	}

	views := make([]assetView, 0, len(list))
	for i := range list {
		views = append(views, toAssetView(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"list": views})
}

// UpdateViews 管理员回填月播放量
func (h *AssetHandler) UpdateViews(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req struct {
		MonthlyViews int64 `json:"monthly_views"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.UpdateMonthlyViews(c.Request.Context(), id, req.MonthlyViews); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
