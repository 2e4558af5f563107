// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
package handler

import (
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/service"
)

// Handlers 聚合所有 Handler 实例，Router 层通过此结构访问各个 Handler
type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Contact      *ContactHandler
	Conversation *ConversationHandler
	Notification *NotificationHandler
	Post         *PostHandler
	Media        *MediaHandler
	Ws           *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// hub 为本实例的事件中心，WebSocket 连接在此订阅
func NewHandlers(svc *service.Services, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svc.Auth),
		Profile:      NewProfileHandler(svc.Profile),
		Contact:      NewContactHandler(svc.Contact),
		Conversation: NewConversationHandler(svc.Conversation),
		Notification: NewNotificationHandler(svc.Notification),
		Post:         NewPostHandler(svc.Post),
		Media:        NewMediaHandler(svc.Media),
		Ws:           NewWsHandler(svc.Conversation, hub),
	}
}
