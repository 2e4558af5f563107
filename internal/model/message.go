package model

import "time"

// Message 会话中的一条消息，除已读标记外不可修改
// 对应数据库 message 表
type Message struct {
	ID uint `gorm:"primarykey"`

	// Uuid 雪花算法生成，随时间递增
	Uuid           int64     `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`
	ConversationId string    `gorm:"column:conversation_id;index:idx_message_conversation;type:char(20);not null;comment:会话uuid"`
	SenderId       string    `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`
	Content        string    `gorm:"column:content;type:TEXT;not null;comment:消息内容"`
	IsRead         bool      `gorm:"column:is_read;not null;default:false;comment:是否已读"`
	CreatedAt      time.Time `gorm:"column:created_at;index:idx_message_conversation"`
}

func (Message) TableName() string {
	return "message"
}
