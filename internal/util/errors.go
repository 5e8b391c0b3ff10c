package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("验证码错误或已过期")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrReportNotFound     = errors.New("report not found")
)
