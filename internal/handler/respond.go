package handler

import (
	"errors"
	"net/http"

	"MilCan_Platform/internal/middleware"
	"MilCan_Platform/internal/pkg"

	"github.com/gin-gonic/gin"
)

// writeErr 业务错误分类映射到http状态码
func writeErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkg.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pkg.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pkg.ErrConflict), errors.Is(err, pkg.ErrAlreadyUsed):
		status = http.StatusConflict
	case errors.Is(err, pkg.ErrExpired):
		status = http.StatusGone
	case errors.Is(err, pkg.ErrDependency):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func memberIDFromCtx(c *gin.Context) uint64 {
	v, ok := c.Get(middleware.ContextMemberIDKey)
	if !ok {
		return 0
	}
	return v.(uint64)
}
