// Package contact 联系人关系的状态计算与请求流转
package contact

import (
	"context"
	"fmt"
	"time"

	"venturedeck/internal/dao/mysql/repository"
	myredis "venturedeck/internal/dao/redis"
	"venturedeck/internal/dto/respond"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/model"
	"venturedeck/internal/service/notification"
	"venturedeck/internal/session"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/enum/contact_request/contact_request_status_enum"
	"venturedeck/pkg/enum/notification/notification_type_enum"
	"venturedeck/pkg/enum/relation/relation_state_enum"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/random"

	"go.uber.org/zap"
)

// Service 联系人业务实现
type Service struct {
	repos     *repository.Repositories
	cache     myredis.CacheService
	publisher ws.Publisher
	retention time.Duration
	now       func() time.Time
}

// NewContactService retentionDays 为被忽略请求对发送方可见的天数
func NewContactService(repos *repository.Repositories, cache myredis.CacheService, publisher ws.Publisher, retentionDays int) *Service {
	if retentionDays <= 0 {
		retentionDays = constants.IGNORED_RETENTION_DAYS
	}
	return &Service{
		repos:     repos,
		cache:     cache,
		publisher: publisher,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

func (s *Service) ignoredSince() time.Time {
	return s.now().Add(-s.retention)
}

// Relationship 当前用户与 targetId 的关系
func (s *Service) Relationship(_ context.Context, sess session.Session, targetId string) (*respond.RelationshipRespond, error) {
	if sess.Is(targetId) {
		rsp := Resolve(sess.UserID, targetId, false, nil)
		return &rsp, nil
	}
	connected, err := s.repos.Contact.Exists(sess.UserID, targetId)
	if err != nil {
		zap.L().Error("check contact failed", zap.String("user_id", sess.UserID), zap.String("target_id", targetId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	var req *model.ContactRequest
	if !connected {
		req, err = s.repos.ContactRequest.FindVisibleOutgoing(sess.UserID, targetId, s.ignoredSince())
		if err != nil && !errorx.IsNotFound(err) {
			zap.L().Error("find outgoing request failed", zap.String("user_id", sess.UserID), zap.String("target_id", targetId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}
	rsp := Resolve(sess.UserID, targetId, connected, req)
	return &rsp, nil
}

// Relationships 批量计算，目录页使用，两次查询覆盖全部目标
func (s *Service) Relationships(_ context.Context, sess session.Session, targetIds []string) (map[string]respond.RelationshipRespond, error) {
	contactIds, err := s.repos.Contact.FindContactIds(sess.UserID)
	if err != nil {
		zap.L().Error("find contact ids failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	reqs, err := s.repos.ContactRequest.FindVisibleBySender(sess.UserID, s.ignoredSince())
	if err != nil {
		zap.L().Error("find outgoing requests failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	connected := make(map[string]bool, len(contactIds))
	for _, id := range contactIds {
		connected[id] = true
	}
	// 结果按 id 倒序，保留每个接收方最新的一条
	latest := make(map[string]*model.ContactRequest, len(reqs))
	for i := range reqs {
		if _, ok := latest[reqs[i].ReceiverId]; !ok {
			latest[reqs[i].ReceiverId] = &reqs[i]
		}
	}

	result := make(map[string]respond.RelationshipRespond, len(targetIds))
	for _, id := range targetIds {
		result[id] = Resolve(sess.UserID, id, connected[id], latest[id])
	}
	return result, nil
}

// SendRequest none -> pending，同时给接收方写入通知
func (s *Service) SendRequest(ctx context.Context, sess session.Session, targetId string) (*respond.RelationshipRespond, error) {
	if sess.Is(targetId) {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能向自己发送联系人请求")
	}

	sender, err := s.repos.Profile.FindByUuid(sess.UserID)
	if err != nil {
		zap.L().Error("find sender profile failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if _, err := s.repos.Profile.FindByUuid(targetId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find target profile failed", zap.String("target_id", targetId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	state, err := s.Relationship(ctx, sess, targetId)
	if err != nil {
		return nil, err
	}
	switch state.State {
	case relation_state_enum.CONNECTED:
		return nil, errorx.New(errorx.CodeConflict, "你们已经是联系人")
	case relation_state_enum.PENDING, relation_state_enum.IGNORED:
		return nil, errorx.New(errorx.CodeConflict, "已发送过请求，请等待对方处理")
	}

	reverse, err := s.repos.ContactRequest.FindVisibleOutgoing(targetId, sess.UserID, s.ignoredSince())
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find reverse request failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if reverse != nil && reverse.Status == contact_request_status_enum.PENDING {
		return nil, errorx.New(errorx.CodeConflict, "对方已向你发送请求，请直接接受")
	}

	req := &model.ContactRequest{
		Uuid:       random.NewUuid("R"),
		SenderId:   sess.UserID,
		ReceiverId: targetId,
		Status:     contact_request_status_enum.PENDING,
		ActiveKey:  model.PendingKey(sess.UserID, targetId),
	}
	notice := notification.Build(targetId, notification_type_enum.CONTACT_REQUEST,
		fmt.Sprintf("%s sent you a contact request", sender.Email),
		"/founder/"+sess.UserID,
		map[string]string{"sender_id": sess.UserID, "request_id": req.Uuid},
	)

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.ContactRequest.Create(req); err != nil {
			return err
		}
		return tx.Notification.Create(notice)
	})
	if err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeConflict, "已发送过请求，请等待对方处理")
		}
		zap.L().Error("send contact request failed", zap.String("user_id", sess.UserID), zap.String("target_id", targetId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	notification.Push(ctx, s.publisher, notice)
	return &respond.RelationshipRespond{State: relation_state_enum.PENDING, RequestId: req.Uuid}, nil
}

// CancelRequest 发送方撤回待处理请求
func (s *Service) CancelRequest(_ context.Context, sess session.Session, requestId string) error {
	req, err := s.findRequest(requestId)
	if err != nil {
		return err
	}
	if !sess.Is(req.SenderId) {
		return errorx.ErrForbidden
	}
	if req.Status != contact_request_status_enum.PENDING {
		return errorx.New(errorx.CodeConflict, "请求已被处理，无法撤回")
	}
	if err := s.repos.ContactRequest.HardDelete(requestId); err != nil {
		zap.L().Error("cancel contact request failed", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// AcceptRequest 接收方接受：建立双向联系人、通知发送方、删除请求，全部在一个事务内
func (s *Service) AcceptRequest(ctx context.Context, sess session.Session, requestId string) error {
	req, err := s.findRequest(requestId)
	if err != nil {
		return err
	}
	if !sess.Is(req.ReceiverId) {
		return errorx.ErrForbidden
	}
	receiver, err := s.repos.Profile.FindByUuid(sess.UserID)
	if err != nil {
		zap.L().Error("find receiver profile failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return errorx.ErrServerBusy
	}

	notice := notification.Build(req.SenderId, notification_type_enum.CONTACT_ACCEPTED,
		fmt.Sprintf("%s accepted your contact request", receiver.Email),
		"/founder/"+sess.UserID,
		map[string]string{"receiver_id": sess.UserID, "request_id": req.Uuid},
	)

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.ContactRequest.TransitionFromPending(req.Uuid, contact_request_status_enum.ACCEPTED, s.now()); err != nil {
			return err
		}
		// 双方互发时另一条请求可能先被接受，边已存在则只收尾本请求
		connected, err := tx.Contact.Exists(req.SenderId, req.ReceiverId)
		if err != nil {
			return err
		}
		if !connected {
			if err := tx.Contact.CreatePair(req.SenderId, req.ReceiverId); err != nil {
				return err
			}
		}
		// 两人之间其余请求（反向待处理、旧的忽略记录）一并清掉，删除联系人后关系回到 none
		if _, err := tx.ContactRequest.DeleteBetween(req.SenderId, req.ReceiverId, req.Uuid); err != nil {
			return err
		}
		if err := tx.Notification.Create(notice); err != nil {
			return err
		}
		return tx.ContactRequest.SoftDelete(req.Uuid)
	})
	if err != nil {
		if errorx.IsConflict(err) {
			return errorx.New(errorx.CodeConflict, "请求已被处理")
		}
		zap.L().Error("accept contact request failed", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	s.invalidateContacts(ctx, req.SenderId, req.ReceiverId)
	notification.Push(ctx, s.publisher, notice)
	return nil
}

// IgnoreRequest 接收方忽略：请求离开收件箱，发送方在保留期内看到 ignored
func (s *Service) IgnoreRequest(_ context.Context, sess session.Session, requestId string) error {
	req, err := s.findRequest(requestId)
	if err != nil {
		return err
	}
	if !sess.Is(req.ReceiverId) {
		return errorx.ErrForbidden
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.ContactRequest.TransitionFromPending(req.Uuid, contact_request_status_enum.IGNORED, s.now()); err != nil {
			return err
		}
		return tx.ContactRequest.SoftDelete(req.Uuid)
	})
	if err != nil {
		if errorx.IsConflict(err) {
			return errorx.New(errorx.CodeConflict, "请求已被处理")
		}
		zap.L().Error("ignore contact request failed", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// ListIncoming 收到的待处理请求，附带发送方资料
func (s *Service) ListIncoming(_ context.Context, sess session.Session) ([]respond.IncomingRequestRespond, error) {
	reqs, err := s.repos.ContactRequest.FindPendingByReceiver(sess.UserID)
	if err != nil {
		zap.L().Error("find incoming requests failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(reqs) == 0 {
		return []respond.IncomingRequestRespond{}, nil
	}

	senderIds := make([]string, 0, len(reqs))
	for _, r := range reqs {
		senderIds = append(senderIds, r.SenderId)
	}
	profiles, err := s.profileMap(senderIds)
	if err != nil {
		return nil, err
	}

	rsp := make([]respond.IncomingRequestRespond, 0, len(reqs))
	for _, r := range reqs {
		item := respond.IncomingRequestRespond{RequestId: r.Uuid, CreatedAt: r.CreatedAt}
		if p, ok := profiles[r.SenderId]; ok {
			item.Sender = respond.NewProfileSummary(p)
		} else {
			item.Sender = respond.ProfileSummary{UserId: r.SenderId}
		}
		rsp = append(rsp, item)
	}
	return rsp, nil
}

// ListContacts 联系人列表，id 集合走缓存
func (s *Service) ListContacts(ctx context.Context, sess session.Session) ([]respond.ProfileSummary, error) {
	key := constants.CONTACT_SET_KEY + sess.UserID
	ids, err := s.cache.GetSetMembers(ctx, key)
	if err != nil || len(ids) == 0 {
		ids, err = s.repos.Contact.FindContactIds(sess.UserID)
		if err != nil {
			zap.L().Error("find contact ids failed", zap.String("user_id", sess.UserID), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		if len(ids) > 0 {
			if err := s.cache.AddToSet(ctx, key, constants.CONTACT_SET_TTL, ids...); err != nil {
				zap.L().Warn("cache contact ids failed", zap.String("user_id", sess.UserID), zap.Error(err))
			}
		}
	}
	if len(ids) == 0 {
		return []respond.ProfileSummary{}, nil
	}

	profiles, err := s.repos.Profile.FindByUuids(ids)
	if err != nil {
		zap.L().Error("find contact profiles failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.ProfileSummary, 0, len(profiles))
	for i := range profiles {
		rsp = append(rsp, respond.NewProfileSummary(&profiles[i]))
	}
	return rsp, nil
}

// RemoveContact 同时删除两条边
func (s *Service) RemoveContact(ctx context.Context, sess session.Session, contactId string) error {
	if sess.Is(contactId) {
		return errorx.ErrInvalidParam
	}
	var removed int64
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		n, err := tx.Contact.DeletePair(sess.UserID, contactId)
		removed = n
		return err
	})
	if err != nil {
		zap.L().Error("remove contact failed", zap.String("user_id", sess.UserID), zap.String("contact_id", contactId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if removed == 0 {
		return errorx.New(errorx.CodeNotFound, "联系人不存在")
	}
	s.invalidateContacts(ctx, sess.UserID, contactId)
	return nil
}

// PurgeIgnored 物理删除保留期之前被忽略的请求，由定时任务调用
func (s *Service) PurgeIgnored(_ context.Context) (int64, error) {
	n, err := s.repos.ContactRequest.PurgeIgnoredBefore(s.ignoredSince())
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Service) findRequest(requestId string) (*model.ContactRequest, error) {
	req, err := s.repos.ContactRequest.FindByUuid(requestId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "请求不存在或已被处理")
		}
		zap.L().Error("find contact request failed", zap.String("request_id", requestId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return req, nil
}

func (s *Service) profileMap(ids []string) (map[string]*model.Profile, error) {
	profiles, err := s.repos.Profile.FindByUuids(ids)
	if err != nil {
		zap.L().Error("batch find profiles failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	m := make(map[string]*model.Profile, len(profiles))
	for i := range profiles {
		m[profiles[i].Uuid] = &profiles[i]
	}
	return m, nil
}

// invalidateContacts 联系人变化后两侧缓存都要失效
func (s *Service) invalidateContacts(ctx context.Context, userIds ...string) {
	for _, id := range userIds {
		if err := s.cache.Delete(ctx, constants.CONTACT_SET_KEY+id); err != nil {
			zap.L().Warn("invalidate contact cache failed", zap.String("user_id", id), zap.Error(err))
		}
	}
}
