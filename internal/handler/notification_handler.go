package handler

import (
	"venturedeck/internal/dto/request"
	"venturedeck/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List GET /notification/list?limit=
func (h *NotificationHandler) List(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.notificationSvc.List(c.Request.Context(), sess, req.Limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkAllRead POST /notification/markAllRead
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	n, err := h.notificationSvc.MarkAllRead(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"count": n})
}

// UnreadCount GET /notification/unreadCount
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	data, err := h.notificationSvc.UnreadCount(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
