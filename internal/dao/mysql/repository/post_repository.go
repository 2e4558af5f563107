package repository

import (
	"venturedeck/internal/model"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建动态 Repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByUuid(uuid string) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询动态 uuid=%s", uuid)
	}
	return &post, nil
}

func (r *postRepository) FindByUser(userId string) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("user_id = ?", userId).Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询动态 user_id=%s", userId)
	}
	return posts, nil
}

func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return wrapDBError(err, "发布动态")
	}
	return nil
}

func (r *postRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Post{}).Error; err != nil {
		return wrapDBErrorf(err, "删除动态 uuid=%s", uuid)
	}
	return nil
}
