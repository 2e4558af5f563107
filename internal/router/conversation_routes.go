package router

import "github.com/gin-gonic/gin"

// RegisterConversationRoutes 会话与消息
func (rt *Router) RegisterConversationRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Conversation
	conversationGroup := rg.Group("/conversation")
	{
		conversationGroup.POST("/open", h.Open)
		conversationGroup.GET("/list", h.List)
	}
	messageGroup := rg.Group("/message")
	{
		messageGroup.GET("/list", h.Messages)
		messageGroup.POST("/send", h.Send)
		messageGroup.POST("/markRead", h.MarkRead)
	}
}
