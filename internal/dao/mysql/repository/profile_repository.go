package repository

import (
	"venturedeck/internal/model"

	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建资料 Repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUuid(uuid string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.First(&profile, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询资料 uuid=%s", uuid)
	}
	return &profile, nil
}

func (r *profileRepository) FindByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.First(&profile, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询资料 email=%s", email)
	}
	return &profile, nil
}

func (r *profileRepository) FindByUuids(uuids []string) ([]model.Profile, error) {
	var profiles []model.Profile
	if len(uuids) == 0 {
		return profiles, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&profiles).Error; err != nil {
		return nil, wrapDBError(err, "批量查询资料")
	}
	return profiles, nil
}

func (r *profileRepository) FindComplete() ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.Where("is_complete = ?", true).Order("created_at DESC").Order("id DESC").Find(&profiles).Error; err != nil {
		return nil, wrapDBError(err, "查询目录资料")
	}
	return profiles, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return wrapDBError(err, "创建资料")
	}
	return nil
}

func (r *profileRepository) Save(profile *model.Profile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return wrapDBErrorf(err, "保存资料 uuid=%s", profile.Uuid)
	}
	return nil
}
