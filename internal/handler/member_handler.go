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

type MemberHandler struct {
	svc    *service.MemberService
	points *service.PointsService
}

func NewMemberHandler() *MemberHandler {
	return &MemberHandler{
		svc:    service.NewMemberService(),
		points: service.NewPointsService(),
	}
}

type memberView struct {
	ID        uint64    `json:"id"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Handle    string    `json:"handle"`
	Campus    string    `json:"campus,omitempty"`
	Languages []string  `json:"languages"`
	Points    int64     `json:"points"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toMemberView(m *model.Member) memberView {
	v := memberView{
		ID:        m.ID,
		Role:      m.Role,
		Name:      m.Name,
		Email:     m.Email,
		Handle:    m.Handle,
		Campus:    m.Campus,
		Points:    m.Points,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
	_ = json.Unmarshal([]byte(m.Languages), &v.Languages)
	return v
}

// Me 当前登录成员资料
func (h *MemberHandler) Me(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), memberIDFromCtx(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": toMemberView(m)})
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": toMemberView(m)})
}

type UpdateProfileReq struct {
	Name      string   `json:"name"`
	Campus    string   `json:"campus"`
	Languages []string `json:"languages"`
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	err := h.svc.UpdateProfile(c.Request.Context(), memberIDFromCtx(c), service.UpdateProfileInput{
		Name:      req.Name,
		Campus:    req.Campus,
		Languages: req.Languages,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Deactivate 管理员软停用成员
func (h *MemberHandler) Deactivate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Leaderboard 积分排行榜
func (h *MemberHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// PointsHistory 成员积分流水
func (h *MemberHandler) PointsHistory(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.points.History(c.Request.Context(), id, page, size)
	if err != nil {
		writeErr(c, err)
		return
	}

	balance, err := h.points.Balance(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "balance": balance})
}

// AwardReq 管理员手工加减分，幂等键可选
type AwardReq struct {
	MemberID uint64 `json:"member_id" binding:"required"`
	Points   int64  `json:"points" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	RefType  string `json:"ref_type" binding:"required,oneof=asset event bonus admin"`
	RefID    uint64 `json:"ref_id"`
	DedupKey string `json:"dedup_key"`
}

func (h *MemberHandler) Award(c *gin.Context) {
	var req AwardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	applied, err := h.points.Award(c.Request.Context(), service.AwardInput{
		MemberID: req.MemberID,
		Points:   req.Points,
		Reason:   req.Reason,
		RefType:  req.RefType,
		RefID:    req.RefID,
		DedupKey: req.DedupKey,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}
