package controller

import (
	"fmt"
	"path/filepath"

	"brainbox_backend/internal/model"
	"brainbox_backend/internal/service"
	"brainbox_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
	Storage *service.StorageService
}

func NewUserController(svc *service.UserService, storage *service.StorageService) *UserController {
	return &UserController{Service: svc, Storage: storage}
}

// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateProfileRequest true "资料字段"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Service.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 上传头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像图片"
// @Success 200 {object} util.Response
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}
	if fileHeader.Size > util.MaxAvatarSize {
		util.BadRequest(ctx, "avatar file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("avatars/%d/%s%s", claims.UserID, model.GenerateUUID(), filepath.Ext(fileHeader.Filename))
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.Service.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}
