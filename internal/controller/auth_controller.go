package controller

import (
	"errors"

	"brainbox_backend/internal/model"
	"brainbox_backend/internal/service"
	"brainbox_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	College  string `json:"college"`
	Course   string `json:"course"`
}

// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "注册信息"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		College:  req.College,
		Course:   req.Course,
		Role:     model.Student,
	}
	if err := c.Service.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "email": user.Email})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.Service.Login(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary 请求密码重置验证码
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "注册邮箱"
// @Success 200 {object} util.Response
// @Router /api/auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	// 无论邮箱是否注册都返回成功
	util.Success(ctx, gin.H{"message": "验证码已发送（如果该邮箱已注册）"})
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// @Summary 使用验证码重置密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "邮箱、验证码和新密码"
// @Success 200 {object} util.Response
// @Router /api/auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.ResetPassword(ctx.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, util.ErrInvalidOTP) || errors.Is(err, util.ErrUserNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.Service.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
