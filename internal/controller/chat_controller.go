package controller

import (
	"io"

	"brainbox_backend/internal/service"
	"brainbox_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Service *service.ChatService
}

func NewChatController(svc *service.ChatService) *ChatController {
	return &ChatController{Service: svc}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// @Summary 发送消息（SSE 流式回复）
// @Tags 陪伴聊天
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param body body ChatRequest true "消息内容"
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, errChan := c.Service.ChatStream(claims.UserID, req.Message)

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case chunk, ok := <-out:
			if !ok {
				ctx.SSEvent("done", "")
				return false
			}
			ctx.SSEvent("message", chunk)
			return true
		case err, ok := <-errChan:
			if ok && err != nil {
				ctx.SSEvent("error", err.Error())
			}
			return false
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// @Summary 聊天历史
// @Tags 陪伴聊天
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Router /api/chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	msgs, err := c.Service.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

// @Summary 清空聊天历史
// @Tags 陪伴聊天
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/chat/history [delete]
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.ClearHistory(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
