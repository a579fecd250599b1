package handler

import (
	"net/http"
	"strconv"

	"MilCan_Platform/internal/service"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	svc *service.InvitationService
}

func NewInvitationHandler(svc *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

type CreateInviteReq struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=creator ambassador reviewer"`
}

type AcceptInviteReq struct {
	Token     string   `json:"token" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Handle    string   `json:"handle" binding:"required"`
	Password  string   `json:"password" binding:"required,min=8"`
	Campus    string   `json:"campus"`
	Languages []string `json:"languages"`
}

// Create 大使/管理员发出邀请，邮件异步发送
func (h *InvitationHandler) Create(c *gin.Context) {
	var req CreateInviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), memberIDFromCtx(c), req.Email, req.Role)
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitation_id": inv.ID,
		"token":         inv.Token,
		"expires_at":    inv.ExpiresAt,
	})
}

// Validate 受邀页打开时先校验令牌
func (h *InvitationHandler) Validate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "token required"})
		return
	}

	inv, err := h.svc.Validate(c.Request.Context(), token)
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":      inv.Email,
		"role":       inv.Role,
		"expires_at": inv.ExpiresAt,
	})
}

// Accept 接受邀请并建档，令牌一次性
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req AcceptInviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	m, err := h.svc.Accept(c.Request.Context(), req.Token, service.AcceptInput{
		Name:      req.Name,
		Handle:    req.Handle,
		Password:  req.Password,
		Campus:    req.Campus,
		Languages: req.Languages,
	})
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok", "member_id": m.ID, "role": m.Role})
}

// ListMine 我发出的邀请
func (h *InvitationHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListByInviter(c.Request.Context(), memberIDFromCtx(c), page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
