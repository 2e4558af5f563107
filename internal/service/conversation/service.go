// Package conversation 一对一会话与消息
package conversation

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/dto/request"
	"venturedeck/internal/dto/respond"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/model"
	"venturedeck/internal/session"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/random"
	"venturedeck/pkg/util/snowflake"

	"go.uber.org/zap"
)

const previewLength = 120

// Service 会话业务实现
type Service struct {
	repos     *repository.Repositories
	publisher ws.Publisher
	now       func() time.Time
}

func NewConversationService(repos *repository.Repositories, publisher ws.Publisher) *Service {
	return &Service{repos: repos, publisher: publisher, now: time.Now}
}

// Open 查找或创建与 peerId 的会话
// 并发首次创建时唯一索引冲突，重新读取胜出的那一行
func (s *Service) Open(_ context.Context, sess session.Session, peerId string) (*respond.ConversationRespond, error) {
	p1, p2, err := CanonicalPair(sess.UserID, peerId)
	if err != nil {
		return nil, err
	}
	peer, err := s.repos.Profile.FindByUuid(peerId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find peer profile failed", zap.String("peer_id", peerId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	conv, err := s.findOrCreate(p1, p2)
	if err != nil {
		zap.L().Error("open conversation failed", zap.String("user_id", sess.UserID), zap.String("peer_id", peerId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	unread, err := s.repos.Message.CountUnread([]string{conv.Uuid}, sess.UserID)
	if err != nil {
		zap.L().Error("count unread failed", zap.String("conversation_id", conv.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toConversationRespond(conv, respond.NewProfileSummary(peer), unread[conv.Uuid])
	return &rsp, nil
}

func (s *Service) findOrCreate(p1, p2 string) (*model.Conversation, error) {
	conv, err := s.repos.Conversation.FindByPair(p1, p2)
	if err == nil {
		return conv, nil
	}
	if !errorx.IsNotFound(err) {
		return nil, err
	}

	conv = &model.Conversation{Uuid: random.NewUuid("C"), Participant1: p1, Participant2: p2}
	err = s.repos.Conversation.Create(conv)
	if err == nil {
		return conv, nil
	}
	if errorx.IsConflict(err) {
		return s.repos.Conversation.FindByPair(p1, p2)
	}
	return nil, err
}

// List 收件箱：最近有消息的会话在前，附带对方资料和未读数
func (s *Service) List(_ context.Context, sess session.Session) ([]respond.ConversationRespond, error) {
	convs, err := s.repos.Conversation.FindByParticipant(sess.UserID)
	if err != nil {
		zap.L().Error("find conversations failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(convs) == 0 {
		return []respond.ConversationRespond{}, nil
	}

	convIds := make([]string, 0, len(convs))
	peerIds := make([]string, 0, len(convs))
	for i := range convs {
		convIds = append(convIds, convs[i].Uuid)
		peerIds = append(peerIds, convs[i].Peer(sess.UserID))
	}
	peers, err := s.repos.Profile.FindByUuids(peerIds)
	if err != nil {
		zap.L().Error("find peer profiles failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	peerMap := make(map[string]respond.ProfileSummary, len(peers))
	for i := range peers {
		peerMap[peers[i].Uuid] = respond.NewProfileSummary(&peers[i])
	}
	unread, err := s.repos.Message.CountUnread(convIds, sess.UserID)
	if err != nil {
		zap.L().Error("count unread failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.ConversationRespond, 0, len(convs))
	for i := range convs {
		peerId := convs[i].Peer(sess.UserID)
		peer, ok := peerMap[peerId]
		if !ok {
			peer = respond.ProfileSummary{UserId: peerId}
		}
		rsp = append(rsp, toConversationRespond(&convs[i], peer, unread[convs[i].Uuid]))
	}
	return rsp, nil
}

// Authorize 确认调用方是会话参与者，返回会话
func (s *Service) Authorize(_ context.Context, sess session.Session, conversationId string) (*model.Conversation, error) {
	conv, err := s.repos.Conversation.FindByUuid(conversationId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("find conversation failed", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !conv.HasParticipant(sess.UserID) {
		return nil, errorx.ErrForbidden
	}
	return conv, nil
}

// Messages 按时间正序返回全部消息，并把对方发来的标为已读
func (s *Service) Messages(ctx context.Context, sess session.Session, conversationId string) ([]respond.MessageRespond, error) {
	if _, err := s.Authorize(ctx, sess, conversationId); err != nil {
		return nil, err
	}
	messages, err := s.repos.Message.FindByConversation(conversationId)
	if err != nil {
		zap.L().Error("find messages failed", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	// 返回的是标记前的状态，客户端据此显示本次新消息
	rsp := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		rsp = append(rsp, toMessageRespond(&messages[i]))
	}
	if _, err := s.markRead(ctx, sess, conversationId); err != nil {
		return nil, err
	}
	return rsp, nil
}

// Send 写入消息并更新会话摘要，提交后推送到会话 topic
func (s *Service) Send(ctx context.Context, sess session.Session, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if _, err := s.Authorize(ctx, sess, req.ConversationId); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	msg := &model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: req.ConversationId,
		SenderId:       sess.UserID,
		Content:        req.Content,
		CreatedAt:      s.now(),
	}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Message.Create(msg); err != nil {
			return err
		}
		return tx.Conversation.UpdatePreview(req.ConversationId, preview(req.Content), msg.CreatedAt)
	})
	if err != nil {
		zap.L().Error("send message failed", zap.String("conversation_id", req.ConversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := toMessageRespond(msg)
	s.publish(ctx, ws.TypeMessageCreated, req.ConversationId, rsp)
	return &rsp, nil
}

// MarkRead 把对方发来的未读消息标为已读
func (s *Service) MarkRead(ctx context.Context, sess session.Session, conversationId string) (*respond.MarkReadRespond, error) {
	if _, err := s.Authorize(ctx, sess, conversationId); err != nil {
		return nil, err
	}
	return s.markRead(ctx, sess, conversationId)
}

func (s *Service) markRead(ctx context.Context, sess session.Session, conversationId string) (*respond.MarkReadRespond, error) {
	n, err := s.repos.Message.MarkRead(conversationId, sess.UserID)
	if err != nil {
		zap.L().Error("mark messages read failed", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.MarkReadRespond{ConversationId: conversationId, ReaderId: sess.UserID, Count: n}
	if n > 0 {
		s.publish(ctx, ws.TypeMessagesRead, conversationId, rsp)
	}
	return rsp, nil
}

func (s *Service) publish(ctx context.Context, t ws.Type, conversationId string, payload any) {
	if s.publisher == nil {
		return
	}
	event, err := ws.NewEvent(t, ws.ConversationTopic(conversationId), payload)
	if err != nil {
		zap.L().Error("build conversation event failed", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("publish conversation event failed", zap.String("conversation_id", conversationId), zap.Error(err))
	}
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength]) + "..."
}

func toConversationRespond(c *model.Conversation, peer respond.ProfileSummary, unread int64) respond.ConversationRespond {
	rsp := respond.ConversationRespond{
		ConversationId: c.Uuid,
		Peer:           peer,
		LastMessage:    c.LastMessage,
		UnreadCount:    unread,
		CreatedAt:      c.CreatedAt,
	}
	if c.LastMessageAt.Valid {
		at := c.LastMessageAt.Time
		rsp.LastMessageAt = &at
	}
	return rsp
}

func toMessageRespond(m *model.Message) respond.MessageRespond {
	return respond.MessageRespond{
		MessageId:      strconv.FormatInt(m.Uuid, 10),
		ConversationId: m.ConversationId,
		SenderId:       m.SenderId,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
