package repository

import (
	"time"

	"venturedeck/internal/model"

	"gorm.io/gorm"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话 Repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindByPair(participant1, participant2 string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where("participant_1 = ? AND participant_2 = ?", participant1, participant2).First(&conv).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会话 %s/%s", participant1, participant2)
	}
	return &conv, nil
}

func (r *conversationRepository) FindByUuid(uuid string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.First(&conv, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 uuid=%s", uuid)
	}
	return &conv, nil
}

func (r *conversationRepository) FindByParticipant(userId string) ([]model.Conversation, error) {
	var convs []model.Conversation
	// 没有消息的会话排在最后
	err := r.db.Where("participant_1 = ? OR participant_2 = ?", userId, userId).
		Order("last_message_at IS NULL").
		Order("last_message_at DESC").
		Order("created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会话列表 user_id=%s", userId)
	}
	return convs, nil
}

func (r *conversationRepository) Create(conversation *model.Conversation) error {
	if err := r.db.Create(conversation).Error; err != nil {
		return wrapDBError(err, "创建会话")
	}
	return nil
}

func (r *conversationRepository) UpdatePreview(uuid, lastMessage string, at time.Time) error {
	err := r.db.Model(&model.Conversation{}).Where("uuid = ?", uuid).Updates(map[string]any{
		"last_message":    lastMessage,
		"last_message_at": at,
	}).Error
	if err != nil {
		return wrapDBErrorf(err, "更新会话摘要 uuid=%s", uuid)
	}
	return nil
}
