// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"venturedeck/internal/config"
	"venturedeck/internal/dao/mysql/repository"
	myredis "venturedeck/internal/dao/redis"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/infrastructure/mail"
	"venturedeck/internal/infrastructure/storage"
	"venturedeck/internal/service/auth"
	"venturedeck/internal/service/contact"
	"venturedeck/internal/service/conversation"
	"venturedeck/internal/service/media"
	"venturedeck/internal/service/notification"
	"venturedeck/internal/service/post"
	"venturedeck/internal/service/profile"
)

// Services 聚合所有 Service 实例
type Services struct {
	Auth         AuthService
	Profile      ProfileService
	Contact      ContactService
	Conversation ConversationService
	Notification NotificationService
	Post         PostService
	Media        MediaService

	// Retention 被忽略请求的清理任务，供调度器使用
	Retention *contact.Service
}

// Deps Service 层的外部依赖
type Deps struct {
	Repos     *repository.Repositories
	Cache     myredis.AsyncCacheService
	Publisher ws.Publisher
	Mailer    mail.Sender
	Storage   storage.Storage
}

// NewServices 创建并注入所有 Service 实例
func NewServices(conf *config.Config, deps Deps) *Services {
	contactSvc := contact.NewContactService(deps.Repos, deps.Cache, deps.Publisher, conf.IgnoredRequestDays)
	profileSvc := profile.NewProfileService(deps.Repos, deps.Cache, contactSvc)

	return &Services{
		Auth:         auth.NewAuthService(deps.Repos, deps.Cache, deps.Mailer, conf.ResetURL),
		Profile:      profileSvc,
		Contact:      contactSvc,
		Conversation: conversation.NewConversationService(deps.Repos, deps.Publisher),
		Notification: notification.NewNotificationService(deps.Repos),
		Post:         post.NewPostService(deps.Repos),
		Media:        media.NewMediaService(deps.Storage, profileSvc),
		Retention:    contactSvc,
	}
}
