package repository

import (
	"venturedeck/internal/model"

	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系人 Repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Exists(userId, contactId string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Contact{}).Where("user_id = ? AND contact_id = ?", userId, contactId).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询联系人 user_id=%s contact_id=%s", userId, contactId)
	}
	return count > 0, nil
}

func (r *contactRepository) FindContactIds(userId string) ([]string, error) {
	var ids []string
	if err := r.db.Model(&model.Contact{}).Where("user_id = ?", userId).Order("created_at DESC").Pluck("contact_id", &ids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询联系人列表 user_id=%s", userId)
	}
	return ids, nil
}

func (r *contactRepository) CreatePair(userA, userB string) error {
	edges := []model.Contact{
		{UserId: userA, ContactId: userB},
		{UserId: userB, ContactId: userA},
	}
	if err := r.db.Create(&edges).Error; err != nil {
		return wrapDBErrorf(err, "创建联系人关系 %s <-> %s", userA, userB)
	}
	return nil
}

func (r *contactRepository) DeletePair(userA, userB string) (int64, error) {
	res := r.db.Where("(user_id = ? AND contact_id = ?) OR (user_id = ? AND contact_id = ?)", userA, userB, userB, userA).
		Delete(&model.Contact{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "删除联系人关系 %s <-> %s", userA, userB)
	}
	return res.RowsAffected, nil
}
