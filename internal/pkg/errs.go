package pkg

import "errors"

// 业务错误分类，handler层用errors.Is映射到http状态码
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("state conflict")
	ErrExpired     = errors.New("expired")
	ErrAlreadyUsed = errors.New("already used")
	ErrDependency  = errors.New("dependency unavailable")
)
