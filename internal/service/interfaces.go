// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 每个方法显式接收调用方的 session.Session，Service 不读取任何全局会话状态
package service

import (
	"context"
	"io"

	"venturedeck/internal/dto/request"
	"venturedeck/internal/dto/respond"
	"venturedeck/internal/model"
	"venturedeck/internal/session"
)

// AuthService 注册登录与令牌
type AuthService interface {
	Signup(ctx context.Context, req request.SignupRequest) (*respond.TokenRespond, error)
	Login(ctx context.Context, req request.LoginRequest) (*respond.TokenRespond, error)
	Refresh(ctx context.Context, req request.RefreshTokenRequest) (*respond.TokenRespond, error)
	Logout(ctx context.Context, sess session.Session) error
	// ForgotPassword 无论邮箱是否存在都返回成功
	ForgotPassword(ctx context.Context, req request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req request.ResetPasswordRequest) error
}

// ProfileService 资料、主页与目录
type ProfileService interface {
	Me(ctx context.Context, sess session.Session) (*respond.ProfileRespond, error)
	Update(ctx context.Context, sess session.Session, req request.UpdateProfileRequest) (*respond.ProfileRespond, error)
	// Get 创始人主页，附带与查看者的关系
	Get(ctx context.Context, sess session.Session, userId string) (*respond.FounderPageRespond, error)
	Directory(ctx context.Context, sess session.Session, req request.DirectoryRequest) ([]respond.DirectoryItemRespond, error)
}

// ContactService 联系人关系与请求流转
type ContactService interface {
	// Relationship 计算 none / pending / ignored / connected
	Relationship(ctx context.Context, sess session.Session, targetId string) (*respond.RelationshipRespond, error)
	SendRequest(ctx context.Context, sess session.Session, targetId string) (*respond.RelationshipRespond, error)
	CancelRequest(ctx context.Context, sess session.Session, requestId string) error
	AcceptRequest(ctx context.Context, sess session.Session, requestId string) error
	IgnoreRequest(ctx context.Context, sess session.Session, requestId string) error
	ListIncoming(ctx context.Context, sess session.Session) ([]respond.IncomingRequestRespond, error)
	ListContacts(ctx context.Context, sess session.Session) ([]respond.ProfileSummary, error)
	RemoveContact(ctx context.Context, sess session.Session, contactId string) error
}

// ConversationService 会话与消息
type ConversationService interface {
	Open(ctx context.Context, sess session.Session, peerId string) (*respond.ConversationRespond, error)
	List(ctx context.Context, sess session.Session) ([]respond.ConversationRespond, error)
	// Authorize 校验调用方是会话参与者，WebSocket 订阅前调用
	Authorize(ctx context.Context, sess session.Session, conversationId string) (*model.Conversation, error)
	Messages(ctx context.Context, sess session.Session, conversationId string) ([]respond.MessageRespond, error)
	Send(ctx context.Context, sess session.Session, req request.SendMessageRequest) (*respond.MessageRespond, error)
	MarkRead(ctx context.Context, sess session.Session, conversationId string) (*respond.MarkReadRespond, error)
}

// NotificationService 通知
type NotificationService interface {
	List(ctx context.Context, sess session.Session, limit int) ([]respond.NotificationRespond, error)
	MarkAllRead(ctx context.Context, sess session.Session) (int64, error)
	UnreadCount(ctx context.Context, sess session.Session) (*respond.UnreadCountRespond, error)
}

// PostService 主页动态
type PostService interface {
	Create(ctx context.Context, sess session.Session, content string) (*respond.PostRespond, error)
	List(ctx context.Context, sess session.Session, userId string) ([]respond.PostRespond, error)
	Delete(ctx context.Context, sess session.Session, postId string) error
}

// MediaService 头像上传
type MediaService interface {
	UploadAvatar(ctx context.Context, sess session.Session, fileName, contentType string, size int64, body io.Reader) (*respond.AvatarRespond, error)
	Presign(ctx context.Context, sess session.Session, req request.PresignRequest) (*respond.PresignRespond, error)
}
