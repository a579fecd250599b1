package router

import (
	"MilCan_Platform/internal/handler"
	"MilCan_Platform/internal/middleware"
	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(emailSvc *service.EmailService, inviteSvc *service.InvitationService) *gin.Engine {
	r := gin.Default()

	auth := handler.NewAuthHandler(emailSvc)
	member := handler.NewMemberHandler()
	asset := handler.NewAssetHandler()
	review := handler.NewReviewHandler()
	invite := handler.NewInvitationHandler(inviteSvc)
	event := handler.NewEventHandler()
	dashboard := handler.NewDashboardHandler()

	// 注册/登录/找回密码
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/reset/code", auth.SendResetCode)
		authGroup.POST("/reset", auth.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", auth.TokenRefresh)
	}

	// 邀请接受侧不需要登录态
	r.GET("/api/invitations/validate", invite.Validate)
	r.POST("/api/invitations/accept", invite.Accept)

	// 公开榜单和仪表盘
	r.GET("/api/leaderboard", member.Leaderboard)
	r.GET("/api/dashboard/stats", dashboard.Stats)
	r.GET("/api/dashboard/activity", dashboard.Activity)
	r.GET("/api/events", event.ListUpcoming)

	// 登录态接口
	me := r.Group("/api/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", member.Me)
		me.PUT("/profile", member.UpdateProfile)
		me.POST("/logout", auth.Logout)
		me.POST("/change-password", auth.ChangePassword)
	}

	// 内容投稿与查询
	assetGroup := r.Group("/api/assets")
	assetGroup.Use(middleware.AuthMiddleware())
	{
		assetGroup.POST("", asset.Submit)
		assetGroup.GET("", asset.List)
		assetGroup.GET("/:id", asset.Get)
	}

	// 审核接口，评审员和管理员可用
	reviewGroup := r.Group("/api/assets")
	reviewGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(model.RoleReviewer, model.RoleAdmin))
	{
		reviewGroup.POST("/:id/approve", review.Approve)
		reviewGroup.POST("/:id/reject", review.Reject)
	}

	// 邀请发起侧，大使和管理员可用
	inviteGroup := r.Group("/api/invitations")
	inviteGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(model.RoleAmbassador, model.RoleAdmin))
	{
		inviteGroup.POST("", invite.Create)
		inviteGroup.GET("/mine", invite.ListMine)
	}

	// 活动，大使和管理员可建
	eventGroup := r.Group("/api/events")
	eventGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(model.RoleAmbassador, model.RoleAdmin))
	{
		eventGroup.POST("", event.Create)
	}

	// 成员档案
	memberGroup := r.Group("/api/members")
	memberGroup.Use(middleware.AuthMiddleware())
	{
		memberGroup.GET("/:id", member.Get)
		memberGroup.GET("/:id/points", member.PointsHistory)
	}

	// 管理接口
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(model.RoleAdmin))
	{
		adminGroup.POST("/members/:id/deactivate", member.Deactivate)
		adminGroup.POST("/points/award", member.Award)
		adminGroup.PUT("/assets/:id/views", asset.UpdateViews)
	}

	return r
}
