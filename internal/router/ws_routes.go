package router

import "github.com/gin-gonic/gin"

// RegisterWebSocketRoutes 实时推送
// 浏览器无法设置 Header，token 通过查询参数传递: ws://host/ws/notification?token=...
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Ws
	wsGroup := rg.Group("/ws")
	{
		wsGroup.GET("/conversation", h.Conversation)
		wsGroup.GET("/notification", h.Notification)
	}
}
