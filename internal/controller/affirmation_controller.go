package controller

import (
	"brainbox_backend/internal/service"
	"brainbox_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AffirmationController struct {
	Service *service.AffirmationService
}

func NewAffirmationController(svc *service.AffirmationService) *AffirmationController {
	return &AffirmationController{Service: svc}
}

type CreateAffirmationRequest struct {
	Content string `json:"content" binding:"required"`
}

// @Summary 新增鼓励短句（管理员）
// @Tags 鼓励短句
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAffirmationRequest true "短句内容"
// @Success 201 {object} util.Response{data=model.Affirmation}
// @Router /api/admin/affirmations [post]
func (c *AffirmationController) Create(ctx *gin.Context) {
	var req CreateAffirmationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Create(req.Content)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary 今日鼓励短句
// @Tags 鼓励短句
// @Produce json
// @Success 200 {object} util.Response{data=model.Affirmation}
// @Router /api/affirmation [get]
func (c *AffirmationController) Today(ctx *gin.Context) {
	a, err := c.Service.Today()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if a == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, a)
}
