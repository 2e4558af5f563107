package handler

import (
	"venturedeck/internal/dto/request"
	"venturedeck/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 会话与消息
type ConversationHandler struct {
	conversationSvc service.ConversationService
}

func NewConversationHandler(conversationSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationSvc: conversationSvc}
}

// Open POST /conversation/open
func (h *ConversationHandler) Open(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.Open(c.Request.Context(), sess, req.PeerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// List GET /conversation/list
func (h *ConversationHandler) List(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	data, err := h.conversationSvc.List(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Messages GET /message/list?conversation_id=
func (h *ConversationHandler) Messages(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.ConversationIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.Messages(c.Request.Context(), sess, req.ConversationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Send POST /message/send
func (h *ConversationHandler) Send(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.Send(c.Request.Context(), sess, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead POST /message/markRead
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.ConversationIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.MarkRead(c.Request.Context(), sess, req.ConversationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
