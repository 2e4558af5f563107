// Package media 头像上传与直传签名，文件内容原样保存
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"venturedeck/internal/dto/request"
	"venturedeck/internal/dto/respond"
	"venturedeck/internal/infrastructure/storage"
	"venturedeck/internal/session"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/random"

	"go.uber.org/zap"
)

// AvatarSetter 由资料服务实现
type AvatarSetter interface {
	SetAvatar(ctx context.Context, sess session.Session, url string) error
}

var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

type Service struct {
	store    storage.Storage
	profiles AvatarSetter
}

func NewMediaService(store storage.Storage, profiles AvatarSetter) *Service {
	return &Service{store: store, profiles: profiles}
}

// UploadAvatar 服务端上传并更新资料中的头像地址
func (s *Service) UploadAvatar(ctx context.Context, sess session.Session, fileName, contentType string, size int64, body io.Reader) (*respond.AvatarRespond, error) {
	if size <= 0 || size > constants.FILE_MAX_SIZE {
		return nil, errorx.New(errorx.CodeInvalidParam, "头像大小需在 5MB 以内")
	}
	key, err := avatarKey(sess.UserID, fileName, contentType)
	if err != nil {
		return nil, err
	}

	url, err := s.store.Put(ctx, key, contentType, body, size)
	if err != nil {
		zap.L().Error("upload avatar failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err := s.profiles.SetAvatar(ctx, sess, url); err != nil {
		return nil, err
	}
	return &respond.AvatarRespond{AvatarUrl: url}, nil
}

// Presign 浏览器直传，资料由客户端上传成功后自行更新
func (s *Service) Presign(ctx context.Context, sess session.Session, req request.PresignRequest) (*respond.PresignRespond, error) {
	key, err := avatarKey(sess.UserID, req.FileName, req.ContentType)
	if err != nil {
		return nil, err
	}
	up, err := s.store.PresignPut(ctx, key, req.ContentType)
	if errors.Is(err, storage.ErrPresignUnsupported) {
		return nil, errorx.New(errorx.CodeInvalidParam, "当前存储不支持直传，请使用上传接口")
	}
	if err != nil {
		zap.L().Error("presign avatar failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.PresignRespond{
		UploadUrl: up.URL,
		Key:       up.Key,
		PublicUrl: up.PublicURL,
		ExpiresAt: up.ExpiresAt,
	}, nil
}

// avatarKey avatars/<uid>-<随机串><扩展名>
func avatarKey(userId, fileName, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", errorx.New(errorx.CodeInvalidParam, "只支持图片格式")
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExt[ext] {
		return "", errorx.New(errorx.CodeInvalidParam, "不支持的图片格式")
	}
	return "avatars/" + userId + "-" + random.GetNowAndLenRandomString(6) + ext, nil
}
