package repository

import (
	"venturedeck/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "写入通知")
	}
	return nil
}

func (r *notificationRepository) FindByUser(userId string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.db.Where("user_id = ?", userId).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 user_id=%s", userId)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(userId string) (int64, error) {
	res := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "通知标记已读 user_id=%s", userId)
	}
	return res.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(userId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).Where("user_id = ? AND is_read = ?", userId, false).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 user_id=%s", userId)
	}
	return count, nil
}
