package handler

import (
	"venturedeck/internal/dto/request"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsHandler 实时推送连接，鉴权和参与者校验在升级前完成
type WsHandler struct {
	conversationSvc service.ConversationService
	hub             *ws.Hub
}

func NewWsHandler(conversationSvc service.ConversationService, hub *ws.Hub) *WsHandler {
	return &WsHandler{conversationSvc: conversationSvc, hub: hub}
}

// Conversation GET /ws/conversation?conversation_id=
func (h *WsHandler) Conversation(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.ConversationIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if _, err := h.conversationSvc.Authorize(c.Request.Context(), sess, req.ConversationId); err != nil {
		HandleError(c, err)
		return
	}
	h.serve(c, ws.ConversationTopic(req.ConversationId))
}

// Notification GET /ws/notification
func (h *WsHandler) Notification(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	h.serve(c, ws.NotificationTopic(sess.UserID))
}

func (h *WsHandler) serve(c *gin.Context, topic string) {
	_, events, cancel := h.hub.Subscribe(topic, ws.DefaultBufferSize)
	conn, err := ws.Upgrade(c.Writer, c.Request)
	if err != nil {
		cancel()
		// Upgrade 已写出错误响应
		zap.L().Warn("ws upgrade failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	ws.Serve(conn, events, cancel)
}
