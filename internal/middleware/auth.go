package middleware

import (
	"net/http"
	"strings"

	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextMemberIDKey = "member_id"
	ContextRoleKey     = "role"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		sessions := &redis.SessionRepository{}

		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		// redis校验是否是当前会话的token
		originToken, err := sessions.GetToken(claims.MemberID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Account has been logging elsewhere"})
			c.Abort()
			return
		}

		if originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Account has been logging elsewhere"})
			c.Abort()
			return
		}

		// 校验通过后更新过期时间
		if err = sessions.ExtendToken(claims.MemberID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		// 注入 member_id 和角色
		c.Set(ContextMemberIDKey, claims.MemberID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole 角色门禁，挂在AuthMiddleware之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, ok := c.Get(ContextRoleKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
			return
		}
		role := roleAny.(string)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "insufficient role"})
	}
}
