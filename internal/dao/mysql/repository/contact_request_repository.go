package repository

import (
	"time"

	"venturedeck/internal/model"
	"venturedeck/pkg/enum/contact_request/contact_request_status_enum"
	"venturedeck/pkg/errorx"

	"gorm.io/gorm"
)

type contactRequestRepository struct {
	db *gorm.DB
}

// NewContactRequestRepository 创建联系人请求 Repository
func NewContactRequestRepository(db *gorm.DB) ContactRequestRepository {
	return &contactRequestRepository{db: db}
}

func (r *contactRequestRepository) FindByUuid(uuid string) (*model.ContactRequest, error) {
	var req model.ContactRequest
	if err := r.db.First(&req, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询联系人请求 uuid=%s", uuid)
	}
	return &req, nil
}

// visibleToSender 被忽略的请求已软删除，需要 Unscoped 才能看到
func (r *contactRequestRepository) visibleToSender(ignoredSince time.Time) *gorm.DB {
	return r.db.Unscoped().Where(
		"(status = ? AND deleted_at IS NULL) OR (status = ? AND ignored_at > ?)",
		contact_request_status_enum.PENDING, contact_request_status_enum.IGNORED, ignoredSince,
	)
}

func (r *contactRequestRepository) FindVisibleOutgoing(senderId, receiverId string, ignoredSince time.Time) (*model.ContactRequest, error) {
	var req model.ContactRequest
	err := r.visibleToSender(ignoredSince).
		Where("sender_id = ? AND receiver_id = ?", senderId, receiverId).
		Order("id DESC").
		First(&req).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询联系人请求 sender=%s receiver=%s", senderId, receiverId)
	}
	return &req, nil
}

func (r *contactRequestRepository) FindVisibleBySender(senderId string, ignoredSince time.Time) ([]model.ContactRequest, error) {
	var reqs []model.ContactRequest
	err := r.visibleToSender(ignoredSince).
		Where("sender_id = ?", senderId).
		Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询发出的联系人请求 sender=%s", senderId)
	}
	return reqs, nil
}

func (r *contactRequestRepository) FindPendingByReceiver(receiverId string) ([]model.ContactRequest, error) {
	var reqs []model.ContactRequest
	err := r.db.Where("receiver_id = ? AND status = ?", receiverId, contact_request_status_enum.PENDING).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询待处理请求 receiver=%s", receiverId)
	}
	return reqs, nil
}

func (r *contactRequestRepository) Create(req *model.ContactRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return wrapDBError(err, "创建联系人请求")
	}
	return nil
}

func (r *contactRequestRepository) TransitionFromPending(uuid, status string, at time.Time) error {
	updates := map[string]any{
		"status":     status,
		"active_key": nil,
	}
	if status == contact_request_status_enum.IGNORED {
		updates["ignored_at"] = at
	}
	res := r.db.Model(&model.ContactRequest{}).
		Where("uuid = ? AND status = ?", uuid, contact_request_status_enum.PENDING).
		Updates(updates)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "更新联系人请求 uuid=%s", uuid)
	}
	if res.RowsAffected == 0 {
		return errorx.Newf(errorx.CodeConflict, "请求 %s 已被处理", uuid)
	}
	return nil
}

func (r *contactRequestRepository) SoftDelete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.ContactRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "删除联系人请求 uuid=%s", uuid)
	}
	return nil
}

func (r *contactRequestRepository) HardDelete(uuid string) error {
	if err := r.db.Unscoped().Where("uuid = ?", uuid).Delete(&model.ContactRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "撤回联系人请求 uuid=%s", uuid)
	}
	return nil
}

func (r *contactRequestRepository) DeleteBetween(userA, userB, exceptUuid string) (int64, error) {
	res := r.db.Unscoped().
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND uuid <> ?",
			userA, userB, userB, userA, exceptUuid).
		Delete(&model.ContactRequest{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "清理联系人请求 %s <-> %s", userA, userB)
	}
	return res.RowsAffected, nil
}

func (r *contactRequestRepository) PurgeIgnoredBefore(before time.Time) (int64, error) {
	res := r.db.Unscoped().
		Where("status = ? AND ignored_at < ?", contact_request_status_enum.IGNORED, before).
		Delete(&model.ContactRequest{})
	if res.Error != nil {
		return 0, wrapDBError(res.Error, "清理过期的忽略请求")
	}
	return res.RowsAffected, nil
}
