// Package notification 用户通知的查询、已读和实时推送
package notification

import (
	"context"
	"encoding/json"

	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/dto/respond"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/model"
	"venturedeck/internal/session"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/random"

	"go.uber.org/zap"
)

// Service 通知业务实现
type Service struct {
	repos *repository.Repositories
}

func NewNotificationService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// List 最新的在前
func (s *Service) List(_ context.Context, sess session.Session, limit int) ([]respond.NotificationRespond, error) {
	list, err := s.repos.Notification.FindByUser(sess.UserID, limit)
	if err != nil {
		zap.L().Error("find notifications failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.NotificationRespond, 0, len(list))
	for i := range list {
		rsp = append(rsp, ToRespond(&list[i]))
	}
	return rsp, nil
}

func (s *Service) MarkAllRead(_ context.Context, sess session.Session) (int64, error) {
	n, err := s.repos.Notification.MarkAllRead(sess.UserID)
	if err != nil {
		zap.L().Error("mark notifications read failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	return n, nil
}

func (s *Service) UnreadCount(_ context.Context, sess session.Session) (*respond.UnreadCountRespond, error) {
	n, err := s.repos.Notification.CountUnread(sess.UserID)
	if err != nil {
		zap.L().Error("count unread notifications failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.UnreadCountRespond{Count: n}, nil
}

// Build 构造一条待写入的通知，metadata 序列化为 JSON
func Build(userId, typ, message, link string, metadata map[string]string) *model.Notification {
	n := &model.Notification{
		Uuid:    random.NewUuid("N"),
		UserId:  userId,
		Type:    typ,
		Message: message,
		Link:    link,
	}
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			n.Metadata = string(b)
		}
	}
	return n
}

// Push 事务提交后推送给接收人，失败只记录日志
func Push(ctx context.Context, publisher ws.Publisher, n *model.Notification) {
	if publisher == nil || n == nil {
		return
	}
	event, err := ws.NewEvent(ws.TypeNotificationCreated, ws.NotificationTopic(n.UserId), ToRespond(n))
	if err != nil {
		zap.L().Error("build notification event failed", zap.Error(err))
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("publish notification failed", zap.String("user_id", n.UserId), zap.Error(err))
	}
}

func ToRespond(n *model.Notification) respond.NotificationRespond {
	rsp := respond.NotificationRespond{
		NotificationId: n.Uuid,
		Type:           n.Type,
		Message:        n.Message,
		Link:           n.Link,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
	if n.Metadata != "" && json.Valid([]byte(n.Metadata)) {
		rsp.Metadata = json.RawMessage(n.Metadata)
	}
	return rsp
}
