package handler

import (
	"venturedeck/internal/dto/request"
	"venturedeck/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 资料、主页与目录
type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Me GET /profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	data, err := h.profileSvc.Me(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Update POST /profile/update
func (h *ProfileHandler) Update(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.Update(c.Request.Context(), sess, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get GET /profile/get?user_id=
func (h *ProfileHandler) Get(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.GetProfileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.Get(c.Request.Context(), sess, req.UserId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Directory GET /directory/list?query=&cofounder_type=
func (h *ProfileHandler) Directory(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.DirectoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.Directory(c.Request.Context(), sess, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
