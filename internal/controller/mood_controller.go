package controller

import (
	"brainbox_backend/internal/service"
	"brainbox_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MoodController struct {
	Service *service.MoodService
}

func NewMoodController(svc *service.MoodService) *MoodController {
	return &MoodController{Service: svc}
}

// @Summary 心情打卡
// @Tags 心情
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LogMoodRequest true "心情与备注"
// @Success 201 {object} util.Response{data=model.MoodEntry}
// @Router /api/mood [post]
func (c *MoodController) LogMood(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LogMoodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.Service.LogMood(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}

// @Summary 心情历史
// @Tags 心情
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/mood/history [get]
func (c *MoodController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	entries, total, err := c.Service.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: entries, Total: total, Page: page, Limit: limit})
}

// @Summary 最近一周心情分布
// @Tags 心情
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.MoodStats}
// @Router /api/mood/stats [get]
func (c *MoodController) WeeklyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.WeeklyStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
