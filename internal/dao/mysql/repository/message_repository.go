package repository

import (
	"venturedeck/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "写入消息")
	}
	return nil
}

func (r *messageRepository) FindByConversation(conversationId string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where("conversation_id = ?", conversationId).
		Order("created_at ASC").
		Order("uuid ASC").
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询消息 conversation_id=%s", conversationId)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(conversationId, readerId string) (int64, error) {
	res := r.db.Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationId, readerId, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "标记已读 conversation_id=%s", conversationId)
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) CountUnread(conversationIds []string, readerId string) (map[string]int64, error) {
	counts := make(map[string]int64, len(conversationIds))
	if len(conversationIds) == 0 {
		return counts, nil
	}
	var rows []struct {
		ConversationId string
		Total          int64
	}
	err := r.db.Model(&model.Message{}).
		Select("conversation_id, COUNT(*) AS total").
		Where("conversation_id IN ? AND sender_id <> ? AND is_read = ?", conversationIds, readerId, false).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "统计未读消息")
	}
	for _, row := range rows {
		counts[row.ConversationId] = row.Total
	}
	return counts, nil
}
