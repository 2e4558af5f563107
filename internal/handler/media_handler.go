package handler

import (
	"venturedeck/internal/dto/request"
	"venturedeck/internal/service"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// avatarFormField multipart 表单中的文件字段名
const avatarFormField = "file"

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// UploadAvatar POST /media/uploadAvatar (multipart, 字段 file)
func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	fh, err := c.FormFile(avatarFormField)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "请选择要上传的图片"))
		return
	}
	if fh.Size > constants.FILE_MAX_SIZE {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "头像大小需在 5MB 以内"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		zap.L().Error("open uploaded avatar failed", zap.Error(err))
		HandleError(c, errorx.ErrServerBusy)
		return
	}
	defer f.Close()

	data, err := h.mediaSvc.UploadAvatar(c.Request.Context(), sess, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Presign POST /media/presign
func (h *MediaHandler) Presign(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.mediaSvc.Presign(c.Request.Context(), sess, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
