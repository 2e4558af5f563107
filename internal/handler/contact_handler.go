package handler

import (
	"context"

	"venturedeck/internal/dto/request"
	"venturedeck/internal/service"
	"venturedeck/internal/session"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系人关系与请求
type ContactHandler struct {
	contactSvc service.ContactService
}

func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// Relationship GET /contact/relationship?target_id=
func (h *ContactHandler) Relationship(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.RelationshipRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.contactSvc.Relationship(c.Request.Context(), sess, req.TargetId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendRequest POST /contact/sendRequest
func (h *ContactHandler) SendRequest(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.SendContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.contactSvc.SendRequest(c.Request.Context(), sess, req.TargetId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CancelRequest POST /contact/cancelRequest
func (h *ContactHandler) CancelRequest(c *gin.Context) {
	h.handleRequest(c, h.contactSvc.CancelRequest)
}

// AcceptRequest POST /contact/acceptRequest
func (h *ContactHandler) AcceptRequest(c *gin.Context) {
	h.handleRequest(c, h.contactSvc.AcceptRequest)
}

// IgnoreRequest POST /contact/ignoreRequest
func (h *ContactHandler) IgnoreRequest(c *gin.Context) {
	h.handleRequest(c, h.contactSvc.IgnoreRequest)
}

// handleRequest 撤回 / 接受 / 忽略的参数和响应完全一致
func (h *ContactHandler) handleRequest(c *gin.Context, action func(ctx context.Context, sess session.Session, requestId string) error) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.HandleContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := action(c.Request.Context(), sess, req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RequestList GET /contact/requestList
func (h *ContactHandler) RequestList(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	data, err := h.contactSvc.ListIncoming(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// List GET /contact/list
func (h *ContactHandler) List(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	data, err := h.contactSvc.ListContacts(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Remove POST /contact/remove
func (h *ContactHandler) Remove(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.RemoveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.contactSvc.RemoveContact(c.Request.Context(), sess, req.ContactId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
