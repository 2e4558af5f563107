package router

import "github.com/gin-gonic/gin"

func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Notification
	notificationGroup := rg.Group("/notification")
	{
		notificationGroup.GET("/list", h.List)
		notificationGroup.GET("/unreadCount", h.UnreadCount)
		notificationGroup.POST("/markAllRead", h.MarkAllRead)
	}
}
