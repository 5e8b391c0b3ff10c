package controller

import (
	"errors"
	"net/http"

	"brainbox_backend/internal/service"
	"brainbox_backend/internal/util"
	"brainbox_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentController struct {
	Service *service.AssessmentService
	Users   *service.UserService
	Email   *service.EmailService
}

func NewAssessmentController(svc *service.AssessmentService, users *service.UserService, email *service.EmailService) *AssessmentController {
	return &AssessmentController{Service: svc, Users: users, Email: email}
}

// 引擎错误到 HTTP 响应的统一翻译
func respondAssessmentError(ctx *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		util.ErrorWithData(ctx, http.StatusUnprocessableEntity, "validation failed", ve.Violations)
		return
	}

	var se *service.ShapeError
	if errors.As(err, &se) {
		util.BadRequest(ctx, se.Error())
		return
	}

	var ie *service.IncompleteAssessmentError
	if errors.As(err, &ie) {
		util.ErrorWithData(ctx, http.StatusConflict, "assessment incomplete", gin.H{"missing": ie.Missing})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}

	util.LogInternalError(ctx, err)
}

// @Summary 读取评估进度
// @Tags 自评评估
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ModuleProgressView}
// @Router /api/assessment/progress [get]
func (c *AssessmentController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetProgress(user.UserID)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 保存单个评估模块
// @Tags 自评评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SaveModuleRequest true "模块名与原始负载"
// @Success 200 {object} util.Response
// @Router /api/assessment/progress [post]
func (c *AssessmentController) SaveModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SaveModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.SaveModule(user.UserID, req); err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"module": req.Module})
}

// @Summary 清空评估进度
// @Tags 自评评估
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/assessment/progress [delete]
func (c *AssessmentController) ClearProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.ClearProgress(user.UserID); err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 对完整原始负载直接出报告
// @Tags 自评评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AnalyzeRequest true "体征、生活方式与三份答题向量"
// @Success 201 {object} util.Response{data=model.AssessmentReport}
// @Failure 422 {object} util.Response
// @Router /api/assessment/analyze [post]
func (c *AssessmentController) Analyze(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.Service.Analyze(user.UserID, req)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// @Summary 用已保存的四个模块出报告
// @Tags 自评评估
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.AssessmentReport}
// @Failure 409 {object} util.Response "模块不齐，data.missing 为缺失模块名"
// @Router /api/assessment/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.Service.SubmitFromProgress(user.UserID)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// @Summary 报告列表（按创建时间倒序）
// @Tags 自评评估
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessment/reports [get]
func (c *AssessmentController) ListReports(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	reports, total, err := c.Service.ListReports(user.UserID, page, limit)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: reports, Total: total, Page: page, Limit: limit})
}

// @Summary 报告详情
// @Tags 自评评估
// @Produce json
// @Security BearerAuth
// @Param id path string true "报告ID"
// @Success 200 {object} util.Response{data=model.AssessmentReport}
// @Router /api/assessment/reports/{id} [get]
func (c *AssessmentController) GetReport(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.Service.GetReport(user.UserID, ctx.Param("id"))
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 把报告发送到用户邮箱
// @Tags 自评评估
// @Produce json
// @Security BearerAuth
// @Param id path string true "报告ID"
// @Success 202 {object} util.Response
// @Router /api/assessment/reports/{id}/email [post]
func (c *AssessmentController) EmailReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.Service.GetReport(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}

	user, err := c.Users.GetProfile(claims.UserID)
	if err != nil {
		respondAssessmentError(ctx, err)
		return
	}

	go func() {
		if err := c.Email.SendReport(user, report); err != nil {
			logger.Log.Error("failed to send report email",
				zap.String("reportId", report.ID), zap.Error(err))
		}
	}()

	ctx.JSON(http.StatusAccepted, util.Response{
		Code:    http.StatusAccepted,
		Message: "report email queued",
	})
}
