// Package repository 定义数据访问层接口和聚合结构
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"venturedeck/internal/model"

	"gorm.io/gorm"
)

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	// FindByUuid 根据 UUID 查找资料
	FindByUuid(uuid string) (*model.Profile, error)
	// FindByEmail 根据登录邮箱查找资料
	FindByEmail(email string) (*model.Profile, error)
	// FindByUuids 批量查找
	FindByUuids(uuids []string) ([]model.Profile, error)
	// FindComplete 查找所有完整资料，按创建时间倒序
	FindComplete() ([]model.Profile, error)
	// Create 创建资料（注册）
	Create(profile *model.Profile) error
	// Save 全字段保存，触发 BeforeSave 重新计算完整度
	Save(profile *model.Profile) error
}

// ContactRequestRepository 联系人请求数据访问接口
type ContactRequestRepository interface {
	// FindByUuid 查找未删除的请求
	FindByUuid(uuid string) (*model.ContactRequest, error)
	// FindVisibleOutgoing 查找发送方可见的请求：待处理，或保留期内被忽略的
	FindVisibleOutgoing(senderId, receiverId string, ignoredSince time.Time) (*model.ContactRequest, error)
	// FindVisibleBySender 批量版本，供目录页一次性计算关系
	FindVisibleBySender(senderId string, ignoredSince time.Time) ([]model.ContactRequest, error)
	// FindPendingByReceiver 接收方的待处理请求，按时间倒序
	FindPendingByReceiver(receiverId string) ([]model.ContactRequest, error)
	// Create 创建请求，同一对用户已有待处理请求时返回 CodeConflict
	Create(req *model.ContactRequest) error
	// TransitionFromPending 将待处理请求改为终态并释放唯一键，请求已不是待处理时返回 CodeConflict
	TransitionFromPending(uuid, status string, at time.Time) error
	// SoftDelete 软删除，接收方列表不再可见
	SoftDelete(uuid string) error
	// HardDelete 物理删除（撤回）
	HardDelete(uuid string) error
	// DeleteBetween 物理删除两人之间除 exceptUuid 外的所有请求（双向、含已忽略），建立联系后调用
	DeleteBetween(userA, userB, exceptUuid string) (int64, error)
	// PurgeIgnoredBefore 物理删除 before 之前被忽略的请求，返回删除条数
	PurgeIgnoredBefore(before time.Time) (int64, error)
}

// ContactRepository 联系人关系数据访问接口
type ContactRepository interface {
	// Exists 判断 userId -> contactId 的边是否存在
	Exists(userId, contactId string) (bool, error)
	// FindContactIds 用户的全部联系人 ID
	FindContactIds(userId string) ([]string, error)
	// CreatePair 同时创建两条方向相反的边
	CreatePair(userA, userB string) error
	// DeletePair 同时删除两条边，返回删除条数
	DeletePair(userA, userB string) (int64, error)
}

// ConversationRepository 会话数据访问接口
type ConversationRepository interface {
	// FindByPair 根据规范化后的用户对查找
	FindByPair(participant1, participant2 string) (*model.Conversation, error)
	// FindByUuid 根据 UUID 查找
	FindByUuid(uuid string) (*model.Conversation, error)
	// FindByParticipant 用户参与的会话，按最近消息时间倒序
	FindByParticipant(userId string) ([]model.Conversation, error)
	// Create 创建会话，用户对已存在时返回 CodeConflict
	Create(conversation *model.Conversation) error
	// UpdatePreview 更新最新消息摘要
	UpdatePreview(uuid, lastMessage string, at time.Time) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 写入消息
	Create(message *model.Message) error
	// FindByConversation 会话内全部消息，按时间正序
	FindByConversation(conversationId string) ([]model.Message, error)
	// MarkRead 将对方发来的未读消息标为已读
	MarkRead(conversationId, readerId string) (int64, error)
	// CountUnread 统计各会话中发给 readerId 的未读数
	CountUnread(conversationIds []string, readerId string) (map[string]int64, error)
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// Create 写入通知
	Create(notification *model.Notification) error
	// FindByUser 用户的通知，按时间倒序，limit <= 0 不限制
	FindByUser(userId string, limit int) ([]model.Notification, error)
	// MarkAllRead 将用户全部未读通知标为已读
	MarkAllRead(userId string) (int64, error)
	// CountUnread 未读通知数
	CountUnread(userId string) (int64, error)
}

// PostRepository 动态数据访问接口
type PostRepository interface {
	FindByUuid(uuid string) (*model.Post, error)
	// FindByUser 用户的动态，按时间倒序
	FindByUser(userId string) ([]model.Post, error)
	Create(post *model.Post) error
	Delete(uuid string) error
}

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db             *gorm.DB
	Profile        ProfileRepository
	ContactRequest ContactRequestRepository
	Contact        ContactRepository
	Conversation   ConversationRepository
	Message        MessageRepository
	Notification   NotificationRepository
	Post           PostRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		Profile:        NewProfileRepository(db),
		ContactRequest: NewContactRequestRepository(db),
		Contact:        NewContactRepository(db),
		Conversation:   NewConversationRepository(db),
		Message:        NewMessageRepository(db),
		Notification:   NewNotificationRepository(db),
		Post:           NewPostRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// fn 内只能使用 txRepos，返回错误时整体回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
